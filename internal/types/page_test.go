package types

import (
	"testing"
)

func TestVisibleBlocks(t *testing.T) {
	p := Page{Blocks: []Block{
		{ID: "b3", Type: BlockTypeHTML, Position: 3, IsVisible: true, Content: HTMLContent{}},
		{ID: "b1", Type: BlockTypeBanner, Position: 1, IsVisible: true, Content: BannerContent{}},
		{ID: "b2", Type: BlockTypeHTML, Position: 2, IsVisible: false, Content: HTMLContent{}},
	}}

	got := p.VisibleBlocks()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "b1" || got[1].ID != "b3" {
		t.Fatalf("order = [%s %s], want [b1 b3]", got[0].ID, got[1].ID)
	}
	// The page's own slice keeps its storage order and the hidden block.
	if len(p.Blocks) != 3 || p.Blocks[0].ID != "b3" {
		t.Fatal("VisibleBlocks must not mutate the page")
	}
}

func TestPageProductRefs(t *testing.T) {
	p := Page{Blocks: []Block{
		{ID: "b1", Type: BlockTypeProductRecommendation, Position: 1, IsVisible: true,
			Content: ProductRecommendationContent{Products: []string{"p2", "p1"}}},
		{ID: "b2", Type: BlockTypeFlashSale, Position: 2, IsVisible: true,
			Content: FlashSaleContent{Products: []string{"p1", "p3"}}},
		{ID: "b3", Type: BlockTypeFlashSale, Position: 3, IsVisible: false,
			Content: FlashSaleContent{Products: []string{"p9"}}},
	}}

	got := p.ProductRefs()
	want := []string{"p2", "p1", "p3"}
	if len(got) != len(want) {
		t.Fatalf("refs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("refs = %v, want %v", got, want)
		}
	}
}

func TestPageUpdateApply(t *testing.T) {
	title := "New Title"
	status := PageStatusPublished
	p := Page{ID: "marketing-1", Title: "Old", Description: "keep", Status: PageStatusDraft}

	PageUpdate{Title: &title, Status: &status}.Apply(&p)

	if p.Title != "New Title" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Status != PageStatusPublished {
		t.Fatalf("status = %q", p.Status)
	}
	if p.Description != "keep" {
		t.Fatalf("nil field overwritten: %q", p.Description)
	}
	if p.ID != "marketing-1" {
		t.Fatalf("id changed: %q", p.ID)
	}
}
