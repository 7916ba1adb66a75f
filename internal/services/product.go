package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/types"
)

type ProductService interface {
	List(ctx context.Context, params types.ListParams) (types.PaginatedProducts, error)
	Get(ctx context.Context, id string) (*types.Product, error)
	Search(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error)
	Create(ctx context.Context, product types.Product) (*types.Product, error)
	Update(ctx context.Context, id string, product types.Product) (*types.Product, error)
}

type productService struct {
	products repos.ProductRepo
	log      *logger.Logger
}

func NewProductService(products repos.ProductRepo, baseLog *logger.Logger) ProductService {
	return &productService{
		products: products,
		log:      baseLog.With("service", "ProductService"),
	}
}

func (s *productService) List(ctx context.Context, params types.ListParams) (types.PaginatedProducts, error) {
	return s.products.List(ctx, params)
}

func (s *productService) Get(ctx context.Context, id string) (*types.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) Search(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error) {
	return s.products.Search(ctx, query, page, limit)
}

func (s *productService) Create(ctx context.Context, product types.Product) (*types.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Info("Product created", "product_id", created.ID)
	return created, nil
}

func (s *productService) Update(ctx context.Context, id string, product types.Product) (*types.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, product)
}

func validateProduct(p types.Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: product title is required", ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: product category is required", ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: product price must be positive", ErrValidation)
	}
	return nil
}
