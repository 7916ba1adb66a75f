package render

import (
	"encoding/json"
	"html/template"

	"github.com/lumistore/backoffice/internal/types"
)

// Metadata is the SEO surface derived from a page: document title and
// description, the Open Graph image taken from the first banner block that
// has one, and JSON-LD structured data.
type Metadata struct {
	Title          string
	Description    string
	URL            string
	Image          string
	ImageAlt       string
	StructuredData template.JS
}

func PageMetadata(page types.Page) Metadata {
	description := page.Description
	if description == "" {
		description = page.Title + " – marketing page"
	}

	meta := Metadata{
		Title:       page.Title,
		Description: description,
		URL:         "/page/" + page.ID,
	}

	for _, block := range page.VisibleBlocks() {
		banner, ok := block.Content.(types.BannerContent)
		if !ok || banner.Image == "" {
			continue
		}
		meta.Image = banner.Image
		meta.ImageAlt = banner.Alt
		if meta.ImageAlt == "" {
			meta.ImageAlt = page.Title
		}
		break
	}

	ld, err := json.Marshal(map[string]any{
		"@context":      "https://schema.org",
		"@type":         "WebPage",
		"name":          page.Title,
		"description":   page.Description,
		"url":           meta.URL,
		"datePublished": page.CreatedAt,
		"dateModified":  page.UpdatedAt,
	})
	if err == nil {
		meta.StructuredData = template.JS(ld)
	}
	return meta
}
