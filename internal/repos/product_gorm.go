package repos

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/types"
)

type ProductRow struct {
	ID            string `gorm:"primaryKey"`
	Title         string `gorm:"not null;index"`
	Description   string
	Price         float64
	OriginalPrice float64
	Discount      int
	Images        datatypes.JSON
	Category      string `gorm:"index"`
	Tags          datatypes.JSON
	Stock         int
	Status        string `gorm:"index"`
	Brand         string
	Rating        float64
	ReviewCount   int
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (ProductRow) TableName() string { return "product" }

type gormProductRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewGormProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &gormProductRepo{
		db:  db,
		log: baseLog.With("repo", "ProductRepo"),
		now: time.Now,
	}
}

var productSortColumns = map[string]string{
	"title":     "title",
	"price":     "price",
	"stock":     "stock",
	"rating":    "rating",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *gormProductRepo) GetByID(ctx context.Context, id string) (*types.Product, error) {
	var row ProductRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	product, err := row.toProduct()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepo) GetByIDs(ctx context.Context, ids []string) ([]types.Product, error) {
	if len(ids) == 0 {
		return []types.Product{}, nil
	}
	var rows []ProductRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToProducts(rows)
}

func (r *gormProductRepo) List(ctx context.Context, params types.ListParams) (types.PaginatedProducts, error) {
	params = params.Normalized()

	var total int64
	if err := r.db.WithContext(ctx).Model(&ProductRow{}).Count(&total).Error; err != nil {
		return types.PaginatedProducts{}, err
	}

	column, ok := productSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	order := column + " desc"
	if params.SortOrder == types.SortAsc {
		order = column + " asc"
	}

	var rows []ProductRow
	if err := r.db.WithContext(ctx).
		Order(order).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&rows).Error; err != nil {
		return types.PaginatedProducts{}, err
	}
	products, err := rowsToProducts(rows)
	if err != nil {
		return types.PaginatedProducts{}, err
	}
	return types.PaginatedProducts{
		Data:       products,
		Pagination: types.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (r *gormProductRepo) Search(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error) {
	params := types.ListParams{Page: page, Limit: limit}.Normalized()
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	base := r.db.WithContext(ctx).Model(&ProductRow{}).
		Where("lower(title) LIKE ? OR lower(category) LIKE ? OR lower(tags) LIKE ?", pattern, pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return types.PaginatedProducts{}, err
	}

	var rows []ProductRow
	if err := base.
		Order("created_at desc").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&rows).Error; err != nil {
		return types.PaginatedProducts{}, err
	}
	products, err := rowsToProducts(rows)
	if err != nil {
		return types.PaginatedProducts{}, err
	}
	return types.PaginatedProducts{
		Data:       products,
		Pagination: types.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (r *gormProductRepo) Create(ctx context.Context, product types.Product) (*types.Product, error) {
	now := r.now()
	product.ID = "product-" + uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = types.ProductStatusActive
	}

	row, err := rowFromProduct(product)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepo) Update(ctx context.Context, id string, product types.Product) (*types.Product, error) {
	var updated *types.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row ProductRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		existing, err := row.toProduct()
		if err != nil {
			return err
		}
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = bumpedTime(r.now(), existing.UpdatedAt)

		newRow, err := rowFromProduct(product)
		if err != nil {
			return err
		}
		if err := tx.Save(&newRow).Error; err != nil {
			return err
		}
		updated = &product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func rowsToProducts(rows []ProductRow) ([]types.Product, error) {
	products := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (row ProductRow) toProduct() (types.Product, error) {
	var images, tags []string
	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &images); err != nil {
			return types.Product{}, err
		}
	}
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			return types.Product{}, err
		}
	}
	return types.Product{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Price:         row.Price,
		OriginalPrice: row.OriginalPrice,
		Discount:      row.Discount,
		Images:        images,
		Category:      row.Category,
		Tags:          tags,
		Stock:         row.Stock,
		Status:        types.ProductStatus(row.Status),
		Brand:         row.Brand,
		Rating:        row.Rating,
		ReviewCount:   row.ReviewCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func rowFromProduct(p types.Product) (ProductRow, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return ProductRow{}, err
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return ProductRow{}, err
	}
	return ProductRow{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Images:        images,
		Category:      p.Category,
		Tags:          tags,
		Stock:         p.Stock,
		Status:        string(p.Status),
		Brand:         p.Brand,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}
