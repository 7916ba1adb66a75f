package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/services"
	"github.com/lumistore/backoffice/internal/types"
)

type ProductHandler struct {
	log      *logger.Logger
	products services.ProductService
}

func NewProductHandler(baseLog *logger.Logger, products services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:      baseLog.With("handler", "ProductHandler"),
		products: products,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	result, err := h.products.List(c.Request.Context(), listParams(c))
	if err != nil {
		h.log.Error("List products failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, product)
}

func (h *ProductHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.products.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.products.Create(c.Request.Context(), product)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := h.products.Update(c.Request.Context(), c.Param("id"), product)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}
