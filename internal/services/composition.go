package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/types"
)

// Draft is an in-memory editing session over one page's block list. Ops
// mutate only the draft; nothing touches the store until Save. Positions may
// go stale mid-edit (removal does not compact them); Save renumbers them
// densely 1..N from the current order.
type Draft struct {
	Page types.Page
	now  func() time.Time
}

func NewDraft(page types.Page) *Draft {
	return &Draft{Page: page, now: time.Now}
}

// NewDraftWithClock injects the clock used for new flash-sale block windows.
func NewDraftWithClock(page types.Page, now func() time.Time) *Draft {
	return &Draft{Page: page, now: now}
}

// AddBlock appends a default block of the given type at the end.
func (d *Draft) AddBlock(t types.BlockType) types.Block {
	block := types.NewDefaultBlock(t, len(d.Page.Blocks)+1, d.now())
	d.Page.Blocks = append(d.Page.Blocks, block)
	return block
}

// RemoveBlock deletes by id. Remaining positions are left as they are; the
// dense ordering comes back on save.
func (d *Draft) RemoveBlock(id string) bool {
	for i, b := range d.Page.Blocks {
		if b.ID == id {
			d.Page.Blocks = append(d.Page.Blocks[:i], d.Page.Blocks[i+1:]...)
			return true
		}
	}
	return false
}

// Reorder moves the block at from to to: remove at source, insert at
// destination.
func (d *Draft) Reorder(from, to int) error {
	n := len(d.Page.Blocks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("reorder out of range: from=%d to=%d len=%d", from, to, n)
	}
	block := d.Page.Blocks[from]
	rest := append(d.Page.Blocks[:from:from], d.Page.Blocks[from+1:]...)
	d.Page.Blocks = append(rest[:to:to], append([]types.Block{block}, rest[to:]...)...)
	return nil
}

// SetBlock is the block-editor confirm callback: it replaces the block's
// content (and title, when non-nil) wholesale. The content must be the
// stored type's variant; a foreign variant would be silently dropped the
// next time the block round-trips through JSON storage.
func (d *Draft) SetBlock(id string, title *string, content types.BlockContent) error {
	for i, b := range d.Page.Blocks {
		if b.ID != id {
			continue
		}
		if content != nil && !types.MatchesType(b.Type, content) {
			return fmt.Errorf("%w: block %s holds %s content", ErrValidation, id, b.Type)
		}
		if title != nil {
			d.Page.Blocks[i].Title = *title
		}
		if content != nil {
			d.Page.Blocks[i].Content = content
		}
		return nil
	}
	return repos.ErrNotFound
}

func (d *Draft) SetVisibility(id string, visible bool) bool {
	for i, b := range d.Page.Blocks {
		if b.ID == id {
			d.Page.Blocks[i].IsVisible = visible
			return true
		}
	}
	return false
}

// renumberBlocks restores the dense 1..N position invariant from the current
// slice order.
func renumberBlocks(blocks []types.Block) {
	for i := range blocks {
		blocks[i].Position = i + 1
	}
}

// CompositionService persists editing sessions. Save is the single point
// where positions are renumbered and where a published page triggers
// revalidation of its public route.
type CompositionService interface {
	Save(ctx context.Context, pageID string, upd types.PageUpdate) (*types.Page, error)
	AddBlock(ctx context.Context, pageID string, t types.BlockType) (*types.Page, error)
	RemoveBlock(ctx context.Context, pageID, blockID string) (*types.Page, error)
	ReorderBlocks(ctx context.Context, pageID string, from, to int) (*types.Page, error)
	UpdateBlock(ctx context.Context, pageID string, blockID string, title *string, content types.BlockContent) (*types.Page, error)
	SetBlockVisibility(ctx context.Context, pageID, blockID string, visible bool) (*types.Page, error)
}

type compositionService struct {
	pages repos.PageRepo
	reval RevalidationService
	log   *logger.Logger
	now   func() time.Time
}

func NewCompositionService(pages repos.PageRepo, reval RevalidationService, baseLog *logger.Logger) CompositionService {
	return &compositionService{
		pages: pages,
		reval: reval,
		log:   baseLog.With("service", "CompositionService"),
		now:   time.Now,
	}
}

func (s *compositionService) Save(ctx context.Context, pageID string, upd types.PageUpdate) (*types.Page, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("%w: page title is required", ErrValidation)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *upd.Status)
	}
	if upd.Blocks != nil {
		renumberBlocks(*upd.Blocks)
	}

	page, err := s.pages.Update(ctx, pageID, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("Page saved", "page_id", page.ID, "status", page.Status, "blocks", len(page.Blocks))

	// Best-effort: a failed revalidation never fails the save.
	if page.Published() {
		if err := s.reval.RevalidatePath(ctx, "/page/"+page.ID); err != nil {
			s.log.Warn("Revalidation after save failed", "page_id", page.ID, "error", err)
		}
	}
	return page, nil
}

func (s *compositionService) AddBlock(ctx context.Context, pageID string, t types.BlockType) (*types.Page, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown block type %q", ErrValidation, t)
	}
	return s.editBlocks(ctx, pageID, func(d *Draft) error {
		d.AddBlock(t)
		return nil
	})
}

func (s *compositionService) RemoveBlock(ctx context.Context, pageID, blockID string) (*types.Page, error) {
	return s.editBlocks(ctx, pageID, func(d *Draft) error {
		if !d.RemoveBlock(blockID) {
			return repos.ErrNotFound
		}
		return nil
	})
}

func (s *compositionService) ReorderBlocks(ctx context.Context, pageID string, from, to int) (*types.Page, error) {
	return s.editBlocks(ctx, pageID, func(d *Draft) error {
		if err := d.Reorder(from, to); err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return nil
	})
}

func (s *compositionService) UpdateBlock(ctx context.Context, pageID string, blockID string, title *string, content types.BlockContent) (*types.Page, error) {
	return s.editBlocks(ctx, pageID, func(d *Draft) error {
		return d.SetBlock(blockID, title, content)
	})
}

func (s *compositionService) SetBlockVisibility(ctx context.Context, pageID, blockID string, visible bool) (*types.Page, error) {
	return s.editBlocks(ctx, pageID, func(d *Draft) error {
		if !d.SetVisibility(blockID, visible) {
			return repos.ErrNotFound
		}
		return nil
	})
}

// editBlocks loads the page into a draft, applies one op, and saves.
func (s *compositionService) editBlocks(ctx context.Context, pageID string, op func(*Draft) error) (*types.Page, error) {
	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	draft := NewDraftWithClock(*page, s.now)
	if err := op(draft); err != nil {
		return nil, err
	}
	blocks := draft.Page.Blocks
	return s.Save(ctx, pageID, types.PageUpdate{Blocks: &blocks})
}
