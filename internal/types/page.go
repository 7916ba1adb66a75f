package types

import (
	"time"
)

type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

func (s PageStatus) Valid() bool {
	switch s {
	case PageStatusDraft, PageStatusPublished, PageStatusArchived:
		return true
	}
	return false
}

// Page is the aggregate root: metadata plus the ordered block list, persisted
// as one unit. ID is immutable after creation and UpdatedAt strictly
// increases on every mutation. A page is publicly renderable iff its status
// is published.
//
// There is no state machine over Status: any status may be set to any other
// at any time.
//
// IsFlashSale is a page-level campaign flag. It is independent of whether the
// page contains a flash_sale block; neither implies the other.
type Page struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      PageStatus `json:"status"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsFlashSale bool       `json:"isFlashSale"`
	Blocks      []Block    `json:"blocks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p Page) Published() bool {
	return p.Status == PageStatusPublished
}

// VisibleBlocks returns the page's visible blocks in ascending position
// order. Both renderers share this filtering and ordering.
func (p Page) VisibleBlocks() []Block {
	out := make([]Block, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if b.IsVisible {
			out = append(out, b)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Position < out[j-1].Position; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ProductRefs returns the product ids referenced by any visible block, in
// block order, deduplicated.
func (p Page) ProductRefs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, b := range p.VisibleBlocks() {
		for _, id := range b.ProductRefs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// PageUpdate is a partial update applied to a stored page. Nil fields are
// left untouched. ID, CreatedAt and UpdatedAt are never client-settable.
type PageUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *PageStatus `json:"status,omitempty"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	IsFlashSale *bool       `json:"isFlashSale,omitempty"`
	Blocks      *[]Block    `json:"blocks,omitempty"`
}

func (u PageUpdate) Apply(p *Page) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.StartDate != nil {
		p.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		p.EndDate = u.EndDate
	}
	if u.IsFlashSale != nil {
		p.IsFlashSale = *u.IsFlashSale
	}
	if u.Blocks != nil {
		p.Blocks = *u.Blocks
	}
}
