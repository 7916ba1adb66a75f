package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/services"
	"github.com/lumistore/backoffice/internal/types"
)

// EditorHandler backs the block editors: product candidate lookup for the
// pickers, selection toggling, and the derived flash-sale status label.
type EditorHandler struct {
	log    *logger.Logger
	editor services.EditorService
	pages  services.PageService
}

func NewEditorHandler(baseLog *logger.Logger, editor services.EditorService, pages services.PageService) *EditorHandler {
	return &EditorHandler{
		log:    baseLog.With("handler", "EditorHandler"),
		editor: editor,
		pages:  pages,
	}
}

// Candidates lists products matching the picker's search box.
func (h *EditorHandler) Candidates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.editor.CandidateProducts(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		h.log.Error("Candidate lookup failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

type toggleSelectionRequest struct {
	Products  []string `json:"products"`
	ProductID string   `json:"productId" binding:"required"`
}

// ToggleSelection flips one product's membership in the multi-select list
// and returns the updated list.
func (h *EditorHandler) ToggleSelection(c *gin.Context) {
	var req toggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	RespondOK(c, gin.H{"products": services.ToggleSelection(req.Products, req.ProductID)})
}

// BlockStatus reports the lifecycle label of a flash-sale block against the
// current clock.
func (h *EditorHandler) BlockStatus(c *gin.Context) {
	page, err := h.pages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	blockID := c.Param("blockId")
	for _, block := range page.Blocks {
		if block.ID != blockID {
			continue
		}
		content, ok := block.Content.(types.FlashSaleContent)
		if !ok {
			RespondServiceError(c, fmt.Errorf("%w: block %s is not a flash sale", services.ErrValidation, blockID))
			return
		}
		RespondOK(c, gin.H{
			"status":    h.editor.FlashSaleStatus(content),
			"startTime": content.StartTime,
			"endTime":   content.EndTime,
		})
		return
	}
	RespondServiceError(c, repos.ErrNotFound)
}
