package repos

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/types"
)

// PageRow is the storage shape of a page aggregate. The block list is stored
// as one JSON column so the aggregate persists as a single unit.
type PageRow struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"index"`
	StartDate   *time.Time
	EndDate     *time.Time
	IsFlashSale bool
	Blocks      datatypes.JSON
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (PageRow) TableName() string { return "marketing_page" }

type gormPageRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewGormPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo {
	return &gormPageRepo{
		db:  db,
		log: baseLog.With("repo", "PageRepo"),
		now: time.Now,
	}
}

var pageSortColumns = map[string]string{
	"title":     "title",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *gormPageRepo) List(ctx context.Context, params types.ListParams) (types.PaginatedPages, error) {
	params = params.Normalized()

	var total int64
	if err := r.db.WithContext(ctx).Model(&PageRow{}).Count(&total).Error; err != nil {
		return types.PaginatedPages{}, err
	}

	column, ok := pageSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	order := column + " desc"
	if params.SortOrder == types.SortAsc {
		order = column + " asc"
	}

	var rows []PageRow
	if err := r.db.WithContext(ctx).
		Order(order).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&rows).Error; err != nil {
		return types.PaginatedPages{}, err
	}

	pages := make([]types.Page, 0, len(rows))
	for _, row := range rows {
		page, err := row.toPage()
		if err != nil {
			return types.PaginatedPages{}, err
		}
		pages = append(pages, page)
	}
	return types.PaginatedPages{
		Data:       pages,
		Pagination: types.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (r *gormPageRepo) GetByID(ctx context.Context, id string) (*types.Page, error) {
	var row PageRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	page, err := row.toPage()
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *gormPageRepo) Create(ctx context.Context, page types.Page) (*types.Page, error) {
	now := r.now()
	page.ID = "marketing-" + uuid.NewString()
	page.CreatedAt = now
	page.UpdatedAt = now
	if page.Blocks == nil {
		page.Blocks = []types.Block{}
	}
	if page.Status == "" {
		page.Status = types.PageStatusDraft
	}

	row, err := rowFromPage(page)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *gormPageRepo) Update(ctx context.Context, id string, upd types.PageUpdate) (*types.Page, error) {
	var updated *types.Page
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row PageRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		page, err := row.toPage()
		if err != nil {
			return err
		}
		upd.Apply(&page)
		page.UpdatedAt = bumpedTime(r.now(), page.UpdatedAt)

		newRow, err := rowFromPage(page)
		if err != nil {
			return err
		}
		if err := tx.Save(&newRow).Error; err != nil {
			return err
		}
		updated = &page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *gormPageRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&PageRow{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormPageRepo) ListPublished(ctx context.Context) ([]types.Page, error) {
	var rows []PageRow
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(types.PageStatusPublished)).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	pages := make([]types.Page, 0, len(rows))
	for _, row := range rows {
		page, err := row.toPage()
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (row PageRow) toPage() (types.Page, error) {
	var blocks []types.Block
	if len(row.Blocks) > 0 {
		if err := json.Unmarshal(row.Blocks, &blocks); err != nil {
			return types.Page{}, err
		}
	}
	if blocks == nil {
		blocks = []types.Block{}
	}
	return types.Page{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      types.PageStatus(row.Status),
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		IsFlashSale: row.IsFlashSale,
		Blocks:      blocks,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func rowFromPage(page types.Page) (PageRow, error) {
	blocks, err := json.Marshal(page.Blocks)
	if err != nil {
		return PageRow{}, err
	}
	return PageRow{
		ID:          page.ID,
		Title:       page.Title,
		Description: page.Description,
		Status:      string(page.Status),
		StartDate:   page.StartDate,
		EndDate:     page.EndDate,
		IsFlashSale: page.IsFlashSale,
		Blocks:      blocks,
		CreatedAt:   page.CreatedAt,
		UpdatedAt:   page.UpdatedAt,
	}, nil
}

// bumpedTime guarantees the strictly-increasing UpdatedAt invariant even when
// two mutations land within clock resolution.
func bumpedTime(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
