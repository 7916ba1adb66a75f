package repos

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumistore/backoffice/internal/types"
)

type memoryProductRepo struct {
	mu       sync.RWMutex
	products []types.Product
	now      func() time.Time
}

func NewMemoryProductRepo(seed []types.Product) ProductRepo {
	products := make([]types.Product, len(seed))
	copy(products, seed)
	return &memoryProductRepo{products: products, now: time.Now}
}

func (r *memoryProductRepo) GetByID(ctx context.Context, id string) (*types.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProductRepo) GetByIDs(ctx context.Context, ids []string) ([]types.Product, error) {
	if len(ids) == 0 {
		return []types.Product{}, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	// Catalog order, not argument order.
	out := make([]types.Product, 0, len(ids))
	for _, p := range r.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryProductRepo) List(ctx context.Context, params types.ListParams) (types.PaginatedProducts, error) {
	params = params.Normalized()

	r.mu.RLock()
	all := make([]types.Product, len(r.products))
	copy(all, r.products)
	r.mu.RUnlock()

	sortProducts(all, params.SortBy, params.SortOrder)
	return paginateProducts(all, params.Page, params.Limit), nil
}

func (r *memoryProductRepo) Search(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error) {
	params := types.ListParams{Page: page, Limit: limit}.Normalized()
	q := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	var matched []types.Product
	for _, p := range r.products {
		if productMatches(p, q) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	sortProducts(matched, "createdAt", types.SortDesc)
	return paginateProducts(matched, params.Page, params.Limit), nil
}

func productMatches(p types.Product, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (r *memoryProductRepo) Create(ctx context.Context, product types.Product) (*types.Product, error) {
	now := r.now()
	product.ID = "product-" + uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = types.ProductStatusActive
	}

	r.mu.Lock()
	r.products = append(r.products, product)
	r.mu.Unlock()
	return &product, nil
}

func (r *memoryProductRepo) Update(ctx context.Context, id string, product types.Product) (*types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		product.ID = p.ID
		product.CreatedAt = p.CreatedAt
		product.UpdatedAt = bumpedTime(r.now(), p.UpdatedAt)
		r.products[i] = product
		return &product, nil
	}
	return nil, ErrNotFound
}

func sortProducts(products []types.Product, sortBy string, order types.SortOrder) {
	less := func(a, b types.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "title":
		less = func(a, b types.Product) bool { return a.Title < b.Title }
	case "price":
		less = func(a, b types.Product) bool { return a.Price < b.Price }
	case "stock":
		less = func(a, b types.Product) bool { return a.Stock < b.Stock }
	case "rating":
		less = func(a, b types.Product) bool { return a.Rating < b.Rating }
	case "updatedAt":
		less = func(a, b types.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if order == types.SortAsc {
			return less(products[i], products[j])
		}
		return less(products[j], products[i])
	})
}

func paginateProducts(all []types.Product, page, limit int) types.PaginatedProducts {
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return types.PaginatedProducts{
		Data:       all[start:end],
		Pagination: types.NewPagination(page, limit, total),
	}
}
