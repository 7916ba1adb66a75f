package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumistore/backoffice/internal/types"
)

// memoryPageRepo is the in-process page store: a mutex-guarded slice behind
// the same interface as the database-backed store. Used as the mock backend
// and throughout the tests.
type memoryPageRepo struct {
	mu    sync.RWMutex
	pages []types.Page
	now   func() time.Time
}

func NewMemoryPageRepo(seed []types.Page) PageRepo {
	pages := make([]types.Page, len(seed))
	copy(pages, seed)
	return &memoryPageRepo{pages: pages, now: time.Now}
}

func (r *memoryPageRepo) List(ctx context.Context, params types.ListParams) (types.PaginatedPages, error) {
	params = params.Normalized()

	r.mu.RLock()
	all := make([]types.Page, len(r.pages))
	copy(all, r.pages)
	r.mu.RUnlock()

	sortPages(all, params.SortBy, params.SortOrder)

	total := int64(len(all))
	start := (params.Page - 1) * params.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return types.PaginatedPages{
		Data:       all[start:end],
		Pagination: types.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (r *memoryPageRepo) GetByID(ctx context.Context, id string) (*types.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.pages {
		if p.ID == id {
			cp := clonePage(p)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryPageRepo) Create(ctx context.Context, page types.Page) (*types.Page, error) {
	now := r.now()
	page.ID = "marketing-" + uuid.NewString()
	page.CreatedAt = now
	page.UpdatedAt = now
	if page.Blocks == nil {
		page.Blocks = []types.Block{}
	}
	if page.Status == "" {
		page.Status = types.PageStatusDraft
	}

	r.mu.Lock()
	r.pages = append(r.pages, clonePage(page))
	r.mu.Unlock()
	return &page, nil
}

func (r *memoryPageRepo) Update(ctx context.Context, id string, upd types.PageUpdate) (*types.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pages {
		if p.ID != id {
			continue
		}
		page := clonePage(p)
		upd.Apply(&page)
		page.UpdatedAt = bumpedTime(r.now(), p.UpdatedAt)
		r.pages[i] = clonePage(page)
		return &page, nil
	}
	return nil, ErrNotFound
}

func (r *memoryPageRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pages {
		if p.ID == id {
			r.pages = append(r.pages[:i], r.pages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPageRepo) ListPublished(ctx context.Context) ([]types.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []types.Page
	for _, p := range r.pages {
		if p.Published() {
			out = append(out, clonePage(p))
		}
	}
	return out, nil
}

func sortPages(pages []types.Page, sortBy string, order types.SortOrder) {
	less := func(a, b types.Page) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "title":
		less = func(a, b types.Page) bool { return a.Title < b.Title }
	case "status":
		less = func(a, b types.Page) bool { return a.Status < b.Status }
	case "updatedAt":
		less = func(a, b types.Page) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if order == types.SortAsc {
			return less(pages[i], pages[j])
		}
		return less(pages[j], pages[i])
	})
}

func clonePage(p types.Page) types.Page {
	blocks := make([]types.Block, len(p.Blocks))
	copy(blocks, p.Blocks)
	p.Blocks = blocks
	return p
}
