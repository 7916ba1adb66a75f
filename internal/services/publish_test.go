package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumistore/backoffice/internal/cache"
	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/render"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/types"
)

// countingPageRepo tracks GetByID hits so cache behavior is observable.
type countingPageRepo struct {
	repos.PageRepo
	gets int
}

func (r *countingPageRepo) GetByID(ctx context.Context, id string) (*types.Page, error) {
	r.gets++
	return r.PageRepo.GetByID(ctx, id)
}

type failingProductRepo struct {
	repos.ProductRepo
}

func (failingProductRepo) GetByIDs(ctx context.Context, ids []string) ([]types.Product, error) {
	return nil, errors.New("catalog unavailable")
}

func newPublishFixture(t *testing.T) (PublishService, *countingPageRepo) {
	t.Helper()
	pages := &countingPageRepo{PageRepo: repos.NewMemoryPageRepo(repos.SeedPages())}
	products := repos.NewMemoryProductRepo(repos.SeedProducts())
	svc := NewPublishService(
		pages,
		products,
		cache.NewMemoryCache(time.Hour),
		render.NewPublicRenderer(),
		render.NewPreviewRenderer(),
		logger.NewNop(),
	)
	return svc, pages
}

func TestRenderPublishedStatuses(t *testing.T) {
	svc, _ := newPublishFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"published", "marketing-1", nil},
		{"archived", "marketing-3", repos.ErrNotFound},
		{"draft", "marketing-4", repos.ErrNotFound},
		{"missing", "marketing-0", repos.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := svc.RenderPublished(ctx, tc.id)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.Contains(html, []byte("<!DOCTYPE html>")) {
				t.Fatal("output is not a full document")
			}
		})
	}
}

func TestRenderPublishedCaches(t *testing.T) {
	svc, pages := newPublishFixture(t)
	ctx := context.Background()

	first, err := svc.RenderPublished(ctx, "marketing-1")
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	getsAfterFirst := pages.gets

	second, err := svc.RenderPublished(ctx, "marketing-1")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if pages.gets != getsAfterFirst {
		t.Fatalf("second render hit the store (%d -> %d gets)", getsAfterFirst, pages.gets)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("cached copy differs from the original rendering")
	}
}

func TestRenderPreviewIgnoresStatusAndCache(t *testing.T) {
	svc, pages := newPublishFixture(t)
	ctx := context.Background()

	if _, err := svc.RenderPreview(ctx, "marketing-4"); err != nil {
		t.Fatalf("draft preview: %v", err)
	}

	gets := pages.gets
	if _, err := svc.RenderPreview(ctx, "marketing-4"); err != nil {
		t.Fatalf("second preview: %v", err)
	}
	if pages.gets != gets+1 {
		t.Fatal("preview must not be served from cache")
	}
}

func TestRenderPublishedToleratesProductFailure(t *testing.T) {
	pages := repos.NewMemoryPageRepo(repos.SeedPages())
	svc := NewPublishService(
		pages,
		failingProductRepo{},
		cache.NewMemoryCache(time.Hour),
		render.NewPublicRenderer(),
		render.NewPreviewRenderer(),
		logger.NewNop(),
	)

	html, err := svc.RenderPublished(context.Background(), "marketing-1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(html) == 0 {
		t.Fatal("empty output")
	}
}

func TestPublishedIDs(t *testing.T) {
	svc, _ := newPublishFixture(t)
	got, err := svc.PublishedIDs(context.Background())
	if err != nil {
		t.Fatalf("published ids: %v", err)
	}
	want := map[string]bool{"marketing-1": true, "marketing-2": true}
	if len(got) != len(want) {
		t.Fatalf("ids = %v", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Fatalf("unexpected id %q in %v", id, got)
		}
	}
}
