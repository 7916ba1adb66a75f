// Package render turns a page aggregate plus its resolved products into
// HTML. Two renderers share one pipeline: the published-page renderer and
// the editor preview. They agree on block filtering (visible only) and
// ordering (ascending position), and differ only in how they treat blocks
// with nothing to show.
package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/lumistore/backoffice/internal/types"
)

type Mode int

const (
	// ModePublic omits blocks that have nothing to render.
	ModePublic Mode = iota
	// ModePreview shows placeholders and empty-state messages instead, so
	// editors can see incomplete blocks.
	ModePreview
)

type Renderer struct {
	mode Mode
	tmpl *template.Template
	now  func() time.Time
}

func NewPublicRenderer() *Renderer  { return newRenderer(ModePublic, time.Now) }
func NewPreviewRenderer() *Renderer { return newRenderer(ModePreview, time.Now) }

// NewRendererWithClock injects the clock used for the flash-sale active
// window; everything else matches the mode's standard renderer.
func NewRendererWithClock(mode Mode, now func() time.Time) *Renderer {
	return newRenderer(mode, now)
}

func newRenderer(mode Mode, now func() time.Time) *Renderer {
	return &Renderer{
		mode: mode,
		tmpl: template.Must(template.New("page").Funcs(templateFuncs).Parse(pageTemplate)),
		now:  now,
	}
}

type pageView struct {
	Title       string
	Description string
	Meta        *Metadata
	Blocks      []blockView
}

type blockView struct {
	Banner    *bannerView
	Products  *productListView
	FlashSale *flashSaleView
	HTML      template.HTML
}

type bannerView struct {
	Image       string
	Link        string
	Alt         string
	Placeholder bool
}

type productListView struct {
	Title    string
	Products []productCardView
	Empty    bool
}

type flashSaleView struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Active    bool
	Products  []productCardView
	Empty     bool
}

type productCardView struct {
	Title         string
	Image         string
	Price         float64
	OriginalPrice float64
	Rating        float64
	FlashSale     bool
}

// Render produces the full HTML document for a page. products is the
// resolved set for every product id the page references; blocks pick their
// own subset out of it, preserving the resolver's order.
func (r *Renderer) Render(page types.Page, products []types.Product) ([]byte, error) {
	view := pageView{
		Title:       page.Title,
		Description: page.Description,
	}
	if r.mode == ModePublic {
		meta := PageMetadata(page)
		view.Meta = &meta
	}

	now := r.now()
	for _, block := range page.VisibleBlocks() {
		if bv, ok := r.renderBlock(block, products, now); ok {
			view.Blocks = append(view.Blocks, bv)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderBlock(block types.Block, products []types.Product, now time.Time) (blockView, bool) {
	switch content := block.Content.(type) {
	case types.BannerContent:
		if content.Image == "" {
			if r.mode == ModePublic {
				return blockView{}, false
			}
			return blockView{Banner: &bannerView{Placeholder: true, Alt: block.Title}}, true
		}
		alt := content.Alt
		if alt == "" {
			alt = block.Title
		}
		return blockView{Banner: &bannerView{Image: content.Image, Link: content.Link, Alt: alt}}, true

	case types.ProductRecommendationContent:
		resolved := selectProducts(products, content.Products)
		count := content.DisplayCount
		if count <= 0 {
			count = 4
		}
		if count < len(resolved) {
			resolved = resolved[:count]
		}
		if len(resolved) == 0 {
			if r.mode == ModePublic {
				return blockView{}, false
			}
			return blockView{Products: &productListView{Title: block.Title, Empty: true}}, true
		}
		return blockView{Products: &productListView{
			Title:    block.Title,
			Products: cards(resolved, false),
		}}, true

	case types.FlashSaleContent:
		resolved := selectProducts(products, content.Products)
		active := content.Active(now)
		if len(resolved) == 0 {
			if r.mode == ModePublic {
				return blockView{}, false
			}
			return blockView{FlashSale: &flashSaleView{
				Title:     block.Title,
				StartTime: content.StartTime,
				EndTime:   content.EndTime,
				Active:    active,
				Empty:     true,
			}}, true
		}
		return blockView{FlashSale: &flashSaleView{
			Title:     block.Title,
			StartTime: content.StartTime,
			EndTime:   content.EndTime,
			Active:    active,
			Products:  cards(resolved, active),
		}}, true

	case types.HTMLContent:
		if content.HTML == "" {
			return blockView{}, false
		}
		// Trusted input by contract: injected unescaped.
		return blockView{HTML: template.HTML(content.HTML)}, true
	}

	// Reserved variants (carousel) render nothing.
	return blockView{}, false
}

// selectProducts keeps the resolved products a block references, in resolver
// order rather than stored reference order.
func selectProducts(resolved []types.Product, refs []string) []types.Product {
	want := make(map[string]bool, len(refs))
	for _, id := range refs {
		want[id] = true
	}
	var out []types.Product
	for _, p := range resolved {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func cards(products []types.Product, flashSale bool) []productCardView {
	out := make([]productCardView, 0, len(products))
	for _, p := range products {
		card := productCardView{
			Title:     p.Title,
			Price:     p.Price,
			Rating:    p.Rating,
			FlashSale: flashSale,
		}
		if len(p.Images) > 0 {
			card.Image = p.Images[0]
		}
		if p.OriginalPrice > p.Price {
			card.OriginalPrice = p.OriginalPrice
		}
		out = append(out, card)
	}
	return out
}
