package services

import (
	"context"
	"time"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/types"
)

// EditorService backs the product-selecting block editors: candidate
// listing with substring search, selection toggling, and the derived
// flash-sale status label.
type EditorService interface {
	CandidateProducts(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error)
	FlashSaleStatus(content types.FlashSaleContent) types.FlashSaleStatus
}

type editorService struct {
	products repos.ProductRepo
	log      *logger.Logger
	now      func() time.Time
}

func NewEditorService(products repos.ProductRepo, baseLog *logger.Logger) EditorService {
	return &editorService{
		products: products,
		log:      baseLog.With("service", "EditorService"),
		now:      time.Now,
	}
}

func (s *editorService) CandidateProducts(ctx context.Context, query string, page, limit int) (types.PaginatedProducts, error) {
	return s.products.Search(ctx, query, page, limit)
}

// FlashSaleStatus is computed against wall-clock time on every call, never
// stored.
func (s *editorService) FlashSaleStatus(content types.FlashSaleContent) types.FlashSaleStatus {
	return content.Status(s.now())
}

// ToggleSelection flips membership of id in the multi-select product list,
// preserving the order of the remaining entries.
func ToggleSelection(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(append([]string{}, ids[:i]...), ids[i+1:]...)
		}
	}
	return append(append([]string{}, ids...), id)
}
