package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockTypeBanner                BlockType = "banner"
	BlockTypeProductRecommendation BlockType = "product_recommendation"
	BlockTypeFlashSale             BlockType = "flash_sale"
	BlockTypeHTML                  BlockType = "html_block"
	// BlockTypeCarousel is declared but has no editor or renderer yet.
	BlockTypeCarousel BlockType = "carousel"
)

func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeBanner, BlockTypeProductRecommendation, BlockTypeFlashSale, BlockTypeHTML, BlockTypeCarousel:
		return true
	}
	return false
}

// BlockContent is the per-variant payload of a Block. The concrete type is
// determined by the block's Type, which gives renderers and editors
// compile-time exhaustiveness over the closed variant set.
type BlockContent interface {
	blockContent()
}

type BannerContent struct {
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

type ProductRecommendationContent struct {
	Products     []string `json:"products"`
	DisplayCount int      `json:"displayCount"`
}

type FlashSaleContent struct {
	Products  []string  `json:"products"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type HTMLContent struct {
	// HTML is injected into rendered output verbatim. Trusted input only.
	HTML string `json:"htmlContent"`
}

// CarouselContent is a placeholder payload for the reserved carousel variant.
type CarouselContent struct{}

func (BannerContent) blockContent()                {}
func (ProductRecommendationContent) blockContent() {}
func (FlashSaleContent) blockContent()             {}
func (HTMLContent) blockContent()                  {}
func (CarouselContent) blockContent()              {}

// FlashSaleStatus is the derived lifecycle label the flash-sale editor shows.
type FlashSaleStatus string

const (
	FlashSaleNotStarted FlashSaleStatus = "not_started"
	FlashSaleActive     FlashSaleStatus = "active"
	FlashSaleEnded      FlashSaleStatus = "ended"
)

// Active reports whether now falls inside the [StartTime, EndTime] window,
// boundaries included.
func (c FlashSaleContent) Active(now time.Time) bool {
	return !now.Before(c.StartTime) && !now.After(c.EndTime)
}

func (c FlashSaleContent) Status(now time.Time) FlashSaleStatus {
	switch {
	case now.Before(c.StartTime):
		return FlashSaleNotStarted
	case now.After(c.EndTime):
		return FlashSaleEnded
	default:
		return FlashSaleActive
	}
}

// Block is one content unit within a page. Position is a 1-based ordinal
// unique within a page; it defines render order and is renumbered densely
// 1..N on every save. Invisible blocks are excluded from rendering but stay
// in storage.
type Block struct {
	ID        string       `json:"id"`
	Type      BlockType    `json:"type"`
	Title     string       `json:"title,omitempty"`
	Content   BlockContent `json:"content"`
	Position  int          `json:"position"`
	IsVisible bool         `json:"isVisible"`
}

// NewDefaultBlock returns a freshly created block of the given type with a
// generated id, the given position, visibility on, and the type's empty
// payload. The flash-sale default window runs from now for 24 hours.
func NewDefaultBlock(t BlockType, position int, now time.Time) Block {
	return Block{
		ID:        "block-" + uuid.NewString(),
		Type:      t,
		Title:     DefaultBlockTitle(t),
		Content:   defaultContent(t, now),
		Position:  position,
		IsVisible: true,
	}
}

func defaultContent(t BlockType, now time.Time) BlockContent {
	switch t {
	case BlockTypeBanner:
		return BannerContent{}
	case BlockTypeProductRecommendation:
		return ProductRecommendationContent{Products: []string{}, DisplayCount: 4}
	case BlockTypeFlashSale:
		return FlashSaleContent{
			Products:  []string{},
			StartTime: now,
			EndTime:   now.Add(24 * time.Hour),
		}
	case BlockTypeHTML:
		return HTMLContent{}
	default:
		return CarouselContent{}
	}
}

// DefaultBlockTitle is the display label a newly added block starts with.
func DefaultBlockTitle(t BlockType) string {
	switch t {
	case BlockTypeBanner:
		return "Banner"
	case BlockTypeProductRecommendation:
		return "Product Recommendations"
	case BlockTypeFlashSale:
		return "Flash Sale"
	case BlockTypeHTML:
		return "HTML Content"
	default:
		return "New Block"
	}
}

type blockEnvelope struct {
	ID        string          `json:"id"`
	Type      BlockType       `json:"type"`
	Title     string          `json:"title,omitempty"`
	Content   json.RawMessage `json:"content"`
	Position  int             `json:"position"`
	IsVisible bool            `json:"isVisible"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(b.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockEnvelope{
		ID:        b.ID,
		Type:      b.Type,
		Title:     b.Title,
		Content:   content,
		Position:  b.Position,
		IsVisible: b.IsVisible,
	})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	content, err := decodeContent(env.Type, env.Content)
	if err != nil {
		return err
	}
	b.ID = env.ID
	b.Type = env.Type
	b.Title = env.Title
	b.Content = content
	b.Position = env.Position
	b.IsVisible = env.IsVisible
	return nil
}

func decodeContent(t BlockType, raw json.RawMessage) (BlockContent, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch t {
	case BlockTypeBanner:
		var c BannerContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case BlockTypeProductRecommendation:
		var c ProductRecommendationContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case BlockTypeFlashSale:
		var c FlashSaleContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case BlockTypeHTML:
		var c HTMLContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case BlockTypeCarousel:
		return CarouselContent{}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", t)
	}
}

// MatchesType reports whether content is the payload variant belonging to t.
// The JSON union decodes content by the block's Type, so a block holding a
// foreign variant would lose it on the next round-trip through storage.
func MatchesType(t BlockType, content BlockContent) bool {
	switch content.(type) {
	case BannerContent:
		return t == BlockTypeBanner
	case ProductRecommendationContent:
		return t == BlockTypeProductRecommendation
	case FlashSaleContent:
		return t == BlockTypeFlashSale
	case HTMLContent:
		return t == BlockTypeHTML
	case CarouselContent:
		return t == BlockTypeCarousel
	}
	return false
}

// ProductRefs returns the product ids a block references, or nil for
// variants that do not reference products.
func (b Block) ProductRefs() []string {
	switch c := b.Content.(type) {
	case ProductRecommendationContent:
		return c.Products
	case FlashSaleContent:
		return c.Products
	}
	return nil
}
