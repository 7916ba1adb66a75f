package services

import (
	"context"

	"github.com/lumistore/backoffice/internal/cache"
	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/render"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/types"
)

// PublishService serves the public side of a page: the statically cached
// published rendering and the uncached editor preview.
type PublishService interface {
	// RenderPublished returns the HTML for a published page, from cache when
	// the cached copy is inside its revalidation window. A missing or
	// non-published page yields repos.ErrNotFound.
	RenderPublished(ctx context.Context, id string) ([]byte, error)
	// RenderPreview renders any page regardless of status, never cached.
	RenderPreview(ctx context.Context, id string) ([]byte, error)
	// PublishedIDs enumerates the statically generatable page ids.
	PublishedIDs(ctx context.Context) ([]string, error)
}

type publishService struct {
	pages    repos.PageRepo
	products repos.ProductRepo
	cache    cache.RenderCache
	public   *render.Renderer
	preview  *render.Renderer
	log      *logger.Logger
}

func NewPublishService(
	pages repos.PageRepo,
	products repos.ProductRepo,
	renderCache cache.RenderCache,
	public *render.Renderer,
	preview *render.Renderer,
	baseLog *logger.Logger,
) PublishService {
	return &publishService{
		pages:    pages,
		products: products,
		cache:    renderCache,
		public:   public,
		preview:  preview,
		log:      baseLog.With("service", "PublishService"),
	}
}

func (s *publishService) RenderPublished(ctx context.Context, id string) ([]byte, error) {
	if html, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warn("Cache read failed, rendering fresh", "page_id", id, "error", err)
	} else if ok {
		return html, nil
	}

	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !page.Published() {
		return nil, repos.ErrNotFound
	}

	html, err := s.renderWith(ctx, s.public, *page)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, id, html, []string{TagMarketingPages}); err != nil {
		s.log.Warn("Cache write failed", "page_id", id, "error", err)
	}
	return html, nil
}

func (s *publishService) RenderPreview(ctx context.Context, id string) ([]byte, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderWith(ctx, s.preview, *page)
}

func (s *publishService) PublishedIDs(ctx context.Context) ([]string, error) {
	pages, err := s.pages.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *publishService) renderWith(ctx context.Context, renderer *render.Renderer, page types.Page) ([]byte, error) {
	products, err := s.products.GetByIDs(ctx, page.ProductRefs())
	if err != nil {
		// Unresolvable products render as absent rather than failing the page.
		s.log.Warn("Product resolution failed", "page_id", page.ID, "error", err)
		products = nil
	}
	return renderer.Render(page, products)
}
