package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/services"
	"github.com/lumistore/backoffice/internal/types"
)

type PageHandler struct {
	log         *logger.Logger
	pages       services.PageService
	composition services.CompositionService
	publish     services.PublishService
}

func NewPageHandler(
	baseLog *logger.Logger,
	pages services.PageService,
	composition services.CompositionService,
	publish services.PublishService,
) *PageHandler {
	return &PageHandler{
		log:         baseLog.With("handler", "PageHandler"),
		pages:       pages,
		composition: composition,
		publish:     publish,
	}
}

func listParams(c *gin.Context) types.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return types.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: types.SortOrder(c.DefaultQuery("sortOrder", "desc")),
	}
}

func (h *PageHandler) List(c *gin.Context) {
	result, err := h.pages.List(c.Request.Context(), listParams(c))
	if err != nil {
		h.log.Error("List pages failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.pages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PageHandler) Create(c *gin.Context) {
	var input services.CreatePageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.pages.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, page)
}

// Update is the editor's save: it persists the whole aggregate, restores
// the dense block ordering, and revalidates the public route when the page
// is published.
func (h *PageHandler) Update(c *gin.Context) {
	var upd types.PageUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.composition.Save(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PageHandler) Delete(c *gin.Context) {
	deleted, err := h.pages.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Delete page failed", "error", err, "page_id", c.Param("id"))
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}

func (h *PageHandler) ListPublished(c *gin.Context) {
	ids, err := h.publish.PublishedIDs(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"ids": ids})
}

// Preview renders the editor-facing variant: placeholders for incomplete
// blocks, any page status, never cached.
func (h *PageHandler) Preview(c *gin.Context) {
	html, err := h.publish.RenderPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

type addBlockRequest struct {
	Type types.BlockType `json:"type" binding:"required"`
}

func (h *PageHandler) AddBlock(c *gin.Context) {
	var req addBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.composition.AddBlock(c.Request.Context(), c.Param("id"), req.Type)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PageHandler) RemoveBlock(c *gin.Context) {
	page, err := h.composition.RemoveBlock(c.Request.Context(), c.Param("id"), c.Param("blockId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *PageHandler) ReorderBlocks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.composition.ReorderBlocks(c.Request.Context(), c.Param("id"), req.From, req.To)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

// UpdateBlock is the block-editor confirm: the body carries the full
// replacement block (type decides how content decodes) and replaces the
// stored content and title wholesale.
func (h *PageHandler) UpdateBlock(c *gin.Context) {
	var block types.Block
	if err := c.ShouldBindJSON(&block); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.composition.UpdateBlock(c.Request.Context(), c.Param("id"), c.Param("blockId"), &block.Title, block.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

type visibilityRequest struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

func (h *PageHandler) SetBlockVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.composition.SetBlockVisibility(c.Request.Context(), c.Param("id"), c.Param("blockId"), *req.IsVisible)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}
