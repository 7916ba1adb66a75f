package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumistore/backoffice/internal/types"
)

func TestMemoryPageRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepo(nil)

	created, err := repo.Create(ctx, types.Page{Title: "Summer Sale", Status: types.PageStatusDraft})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale", got.Title)

	_, err = repo.GetByID(ctx, "marketing-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	title := "Summer Sale 2024"
	updated, err := repo.Update(ctx, created.ID, types.PageUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale 2024", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "UpdatedAt must strictly increase")

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete reports nothing removed")
}

func TestMemoryPageRepoUpdatedAtStrictlyIncreases(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepo(nil)
	created, err := repo.Create(ctx, types.Page{Title: "p", Status: types.PageStatusDraft})
	require.NoError(t, err)

	// Rapid successive updates can land on the same wall-clock reading; the
	// repo still has to produce strictly increasing timestamps.
	prev := created.UpdatedAt
	title := "p"
	for i := 0; i < 5; i++ {
		upd, err := repo.Update(ctx, created.ID, types.PageUpdate{Title: &title})
		require.NoError(t, err)
		require.True(t, upd.UpdatedAt.After(prev), "iteration %d: %v !> %v", i, upd.UpdatedAt, prev)
		prev = upd.UpdatedAt
	}
}

func TestMemoryPageRepoInvisibleBlocksRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepo(nil)
	created, err := repo.Create(ctx, types.Page{Title: "p", Status: types.PageStatusDraft})
	require.NoError(t, err)

	blocks := []types.Block{
		{ID: "b1", Type: types.BlockTypeBanner, Position: 1, IsVisible: true, Content: types.BannerContent{Image: "i"}},
		{ID: "b2", Type: types.BlockTypeHTML, Position: 2, IsVisible: false, Content: types.HTMLContent{HTML: "<p>x</p>"}},
	}
	_, err = repo.Update(ctx, created.ID, types.PageUpdate{Blocks: &blocks})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Blocks, 2, "hidden blocks must survive storage")
	assert.False(t, got.Blocks[1].IsVisible)
}

func TestMemoryPageRepoListAndPublished(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepo(SeedPages())

	list, err := repo.List(ctx, types.ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
	assert.EqualValues(t, 4, list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.TotalPages)

	published, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	for _, p := range published {
		assert.Equal(t, types.PageStatusPublished, p.Status)
	}
}

func TestMemoryProductRepoGetByIDsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepo(SeedProducts())

	got, err := repo.GetByIDs(ctx, []string{"product-9", "product-2", "product-5", "product-404"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Catalog order wins over argument order; unknown ids are skipped.
	assert.Equal(t, "product-2", got[0].ID)
	assert.Equal(t, "product-5", got[1].ID)
	assert.Equal(t, "product-9", got[2].ID)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryProductRepoSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepo([]types.Product{
		{ID: "p1", Title: "Wireless Headphones", Category: "Electronics", Tags: []string{"audio"}},
		{ID: "p2", Title: "Running Shoes", Category: "Sports", Tags: []string{"nike"}},
		{ID: "p3", Title: "Desk Lamp", Category: "Home", Tags: []string{"electric", "audio"}},
	})

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"title_substring", "headph", []string{"p1"}},
		{"category_case_insensitive", "SPORTS", []string{"p2"}},
		{"tag_match", "audio", []string{"p1", "p3"}},
		{"no_match", "garden", nil},
		{"empty_matches_all", "", []string{"p1", "p2", "p3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tc.query, 1, 10)
			require.NoError(t, err)
			var ids []string
			for _, p := range got.Data {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(t, tc.want, ids)
		})
	}
}

func TestMemoryProductRepoUpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepo(nil)

	created, err := repo.Create(ctx, types.Product{Title: "Lamp", Category: "Home", Price: 19.9})
	require.NoError(t, err)
	assert.Equal(t, types.ProductStatusActive, created.Status)

	updated, err := repo.Update(ctx, created.ID, types.Product{
		ID: "forged-id", Title: "Lamp v2", Category: "Home", Price: 24.9,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestBumpedTime(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := bumpedTime(base.Add(time.Second), base); !got.Equal(base.Add(time.Second)) {
		t.Fatalf("advancing clock should win: %v", got)
	}
	if got := bumpedTime(base, base); !got.After(base) {
		t.Fatalf("stalled clock must still move forward: %v", got)
	}
	if got := bumpedTime(base.Add(-time.Hour), base); !got.After(base) {
		t.Fatalf("regressing clock must still move forward: %v", got)
	}
}
