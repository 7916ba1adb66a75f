package repos

import (
	"context"
	"errors"

	"github.com/lumistore/backoffice/internal/types"
)

// ErrNotFound is returned when an id has no match in the store.
var ErrNotFound = errors.New("not found")

// PageRepo is the page-store contract. Pages are persisted as whole
// aggregates; partial updates bump UpdatedAt strictly.
type PageRepo interface {
	List(ctx context.Context, params types.ListParams) (types.PaginatedPages, error)
	GetByID(ctx context.Context, id string) (*types.Page, error)
	Create(ctx context.Context, page types.Page) (*types.Page, error)
	Update(ctx context.Context, id string, upd types.PageUpdate) (*types.Page, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ListPublished enumerates the publicly renderable pages, for static
	// generation and the sitemap.
	ListPublished(ctx context.Context) ([]types.Page, error)
}

// ProductRepo is the product-lookup contract consumed at render time and by
// the product-selecting block editors.
type ProductRepo interface {
	GetByID(ctx context.Context, id string) (*types.Product, error)
	// GetByIDs resolves the given ids, silently dropping misses. Results come
	// back in store order, not argument order.
	GetByIDs(ctx context.Context, ids []string) ([]types.Product, error)
	List(ctx context.Context, params types.ListParams) (types.PaginatedProducts, error)
	// Search matches the query as a case-insensitive substring of product
	// title, category or tags.
	Search(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error)
	Create(ctx context.Context, product types.Product) (*types.Product, error)
	Update(ctx context.Context, id string, product types.Product) (*types.Product, error)
}
