package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDefaultBlock(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("common_defaults", func(t *testing.T) {
		b := NewDefaultBlock(BlockTypeBanner, 3, now)
		if b.ID == "" {
			t.Fatal("expected a generated id")
		}
		if !b.IsVisible {
			t.Fatal("new blocks start visible")
		}
		if b.Position != 3 {
			t.Fatalf("position = %d, want 3", b.Position)
		}
	})

	t.Run("unique_ids", func(t *testing.T) {
		a := NewDefaultBlock(BlockTypeHTML, 1, now)
		b := NewDefaultBlock(BlockTypeHTML, 2, now)
		if a.ID == b.ID {
			t.Fatalf("two blocks share id %q", a.ID)
		}
	})

	t.Run("recommendation_display_count", func(t *testing.T) {
		b := NewDefaultBlock(BlockTypeProductRecommendation, 1, now)
		c, ok := b.Content.(ProductRecommendationContent)
		if !ok {
			t.Fatalf("content type = %T", b.Content)
		}
		if c.DisplayCount != 4 {
			t.Fatalf("DisplayCount = %d, want 4", c.DisplayCount)
		}
		if len(c.Products) != 0 {
			t.Fatalf("Products = %v, want empty", c.Products)
		}
	})

	t.Run("flash_sale_window", func(t *testing.T) {
		b := NewDefaultBlock(BlockTypeFlashSale, 1, now)
		c, ok := b.Content.(FlashSaleContent)
		if !ok {
			t.Fatalf("content type = %T", b.Content)
		}
		if !c.StartTime.Equal(now) {
			t.Fatalf("StartTime = %v, want %v", c.StartTime, now)
		}
		if !c.EndTime.Equal(now.Add(24 * time.Hour)) {
			t.Fatalf("EndTime = %v, want now+24h", c.EndTime)
		}
	})
}

func TestFlashSaleWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	content := FlashSaleContent{StartTime: start, EndTime: end}

	cases := []struct {
		name       string
		now        time.Time
		active     bool
		wantStatus FlashSaleStatus
	}{
		{"before_start", start.Add(-time.Second), false, FlashSaleNotStarted},
		{"at_start", start, true, FlashSaleActive},
		{"inside", start.Add(6 * time.Hour), true, FlashSaleActive},
		{"at_end", end, true, FlashSaleActive},
		{"after_end", end.Add(time.Second), false, FlashSaleEnded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := content.Active(tc.now); got != tc.active {
				t.Fatalf("Active(%v) = %v, want %v", tc.now, got, tc.active)
			}
			if got := content.Status(tc.now); got != tc.wantStatus {
				t.Fatalf("Status(%v) = %v, want %v", tc.now, got, tc.wantStatus)
			}
		})
	}
}

func TestBlockJSONTaggedUnion(t *testing.T) {
	cases := []struct {
		name string
		in   Block
		want any
	}{
		{
			name: "banner",
			in: Block{
				ID: "b1", Type: BlockTypeBanner, Position: 1, IsVisible: true,
				Content: BannerContent{Image: "https://img", Link: "/go", Alt: "alt"},
			},
			want: BannerContent{Image: "https://img", Link: "/go", Alt: "alt"},
		},
		{
			name: "html",
			in: Block{
				ID: "b2", Type: BlockTypeHTML, Position: 2, IsVisible: false,
				Content: HTMLContent{HTML: "<h1>hi</h1>"},
			},
			want: HTMLContent{HTML: "<h1>hi</h1>"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out Block
			if err := json.Unmarshal(raw, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.ID != tc.in.ID || out.Type != tc.in.Type || out.Position != tc.in.Position || out.IsVisible != tc.in.IsVisible {
				t.Fatalf("envelope mismatch: %+v", out)
			}
			if out.Content != tc.want {
				t.Fatalf("content = %#v, want %#v", out.Content, tc.want)
			}
		})
	}
}

func TestBlockJSONUnknownType(t *testing.T) {
	raw := []byte(`{"id":"x","type":"video","content":{},"position":1,"isVisible":true}`)
	var b Block
	if err := json.Unmarshal(raw, &b); err == nil {
		t.Fatal("expected an error for an unknown block type")
	}
}

func TestBlockJSONCarouselReserved(t *testing.T) {
	raw := []byte(`{"id":"c1","type":"carousel","content":{"whatever":1},"position":1,"isVisible":true}`)
	var b Block
	if err := json.Unmarshal(raw, &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := b.Content.(CarouselContent); !ok {
		t.Fatalf("content type = %T, want CarouselContent", b.Content)
	}
}

func TestMatchesType(t *testing.T) {
	cases := []struct {
		name    string
		t       BlockType
		content BlockContent
		want    bool
	}{
		{"banner", BlockTypeBanner, BannerContent{}, true},
		{"recommendation", BlockTypeProductRecommendation, ProductRecommendationContent{}, true},
		{"flash_sale", BlockTypeFlashSale, FlashSaleContent{}, true},
		{"html", BlockTypeHTML, HTMLContent{}, true},
		{"carousel", BlockTypeCarousel, CarouselContent{}, true},
		{"banner_on_html_block", BlockTypeHTML, BannerContent{}, false},
		{"html_on_banner_block", BlockTypeBanner, HTMLContent{}, false},
		{"nil_content", BlockTypeBanner, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesType(tc.t, tc.content); got != tc.want {
				t.Fatalf("MatchesType(%s, %T) = %v, want %v", tc.t, tc.content, got, tc.want)
			}
		})
	}
}

func TestBlockProductRefs(t *testing.T) {
	rec := Block{Type: BlockTypeProductRecommendation, Content: ProductRecommendationContent{Products: []string{"p1", "p2"}}}
	if got := rec.ProductRefs(); len(got) != 2 {
		t.Fatalf("refs = %v", got)
	}
	banner := Block{Type: BlockTypeBanner, Content: BannerContent{}}
	if got := banner.ProductRefs(); got != nil {
		t.Fatalf("banner refs = %v, want nil", got)
	}
}
