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

// PageService owns the page aggregate lifecycle outside of composition
// editing: creation, listing, lookup and removal.
type PageService interface {
	List(ctx context.Context, params types.ListParams) (types.PaginatedPages, error)
	Get(ctx context.Context, id string) (*types.Page, error)
	Create(ctx context.Context, input CreatePageInput) (*types.Page, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPublished(ctx context.Context) ([]types.Page, error)
}

type CreatePageInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      types.PageStatus `json:"status"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	IsFlashSale bool             `json:"isFlashSale"`
	Blocks      []types.Block    `json:"blocks"`
}

type pageService struct {
	pages repos.PageRepo
	log   *logger.Logger
}

func NewPageService(pages repos.PageRepo, baseLog *logger.Logger) PageService {
	return &pageService{
		pages: pages,
		log:   baseLog.With("service", "PageService"),
	}
}

func (s *pageService) List(ctx context.Context, params types.ListParams) (types.PaginatedPages, error) {
	return s.pages.List(ctx, params)
}

func (s *pageService) Get(ctx context.Context, id string) (*types.Page, error) {
	return s.pages.GetByID(ctx, id)
}

func (s *pageService) Create(ctx context.Context, input CreatePageInput) (*types.Page, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: page title is required", ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = types.PageStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, input.Status)
	}

	blocks := input.Blocks
	if blocks == nil {
		blocks = []types.Block{}
	}
	renumberBlocks(blocks)

	page, err := s.pages.Create(ctx, types.Page{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsFlashSale: input.IsFlashSale,
		Blocks:      blocks,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Page created", "page_id", page.ID, "status", page.Status)
	return page, nil
}

func (s *pageService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.pages.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("Page deleted", "page_id", id)
	}
	return deleted, nil
}

func (s *pageService) ListPublished(ctx context.Context) ([]types.Page, error) {
	return s.pages.ListPublished(ctx)
}
