package services

import (
	"context"
	"strings"

	"github.com/lumistore/backoffice/internal/cache"
	"github.com/lumistore/backoffice/internal/logger"
)

// TagMarketingPages covers every cached published page.
const TagMarketingPages = "marketing-pages"

// RevalidationService drops cached rendered pages on demand, by public route
// path or by tag.
type RevalidationService interface {
	RevalidatePath(ctx context.Context, path string) error
	RevalidateTag(ctx context.Context, tag string) error
	// Sweep evicts entries past the revalidation window, for the hourly
	// janitor.
	Sweep(ctx context.Context)
}

type revalidationService struct {
	cache cache.RenderCache
	log   *logger.Logger
}

func NewRevalidationService(renderCache cache.RenderCache, baseLog *logger.Logger) RevalidationService {
	return &revalidationService{
		cache: renderCache,
		log:   baseLog.With("service", "RevalidationService"),
	}
}

func (s *revalidationService) RevalidatePath(ctx context.Context, path string) error {
	id, ok := pageIDFromPath(path)
	if !ok {
		// Only page routes carry a cached rendering; anything else has
		// nothing to drop and succeeds as a no-op.
		s.log.Info("Revalidated path with no cached rendering", "path", path)
		return nil
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return err
	}
	s.log.Info("Revalidated path", "path", path)
	return nil
}

func (s *revalidationService) RevalidateTag(ctx context.Context, tag string) error {
	if err := s.cache.InvalidateTag(ctx, tag); err != nil {
		return err
	}
	s.log.Info("Revalidated tag", "tag", tag)
	return nil
}

func (s *revalidationService) Sweep(ctx context.Context) {
	removed, err := s.cache.Sweep(ctx)
	if err != nil {
		s.log.Warn("Cache sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.log.Info("Cache sweep evicted stale pages", "count", removed)
	}
}

// pageIDFromPath extracts the page id from a public route, e.g.
// "/page/marketing-1".
func pageIDFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/page/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
