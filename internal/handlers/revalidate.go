package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/services"
)

type RevalidateHandler struct {
	log   *logger.Logger
	reval services.RevalidationService
}

func NewRevalidateHandler(baseLog *logger.Logger, reval services.RevalidationService) *RevalidateHandler {
	return &RevalidateHandler{
		log:   baseLog.With("handler", "RevalidateHandler"),
		reval: reval,
	}
}

// Post drops the cached rendering for ?path=<route> or ?tag=<tag>. The
// referer must contain the request's own host, a weak same-origin check
// rather than authentication.
func (h *RevalidateHandler) Post(c *gin.Context) {
	referer := c.GetHeader("Referer")
	host := c.Request.Host
	if referer == "" || host == "" || !strings.Contains(referer, host) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	path := c.Query("path")
	tag := c.Query("tag")

	if path != "" {
		if err := h.reval.RevalidatePath(c.Request.Context(), path); err != nil {
			h.log.Error("Revalidation error", "path", path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error revalidating",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"revalidated": true,
			"path":        path,
			"message":     "Successfully revalidated " + path,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	if tag != "" {
		if err := h.reval.RevalidateTag(c.Request.Context(), tag); err != nil {
			h.log.Error("Revalidation error", "tag", tag, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error revalidating",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"revalidated": true,
			"tag":         tag,
			"message":     "Successfully revalidated tag " + tag,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": "Missing path or tag parameter"})
}

// Get describes the endpoint without side effects.
func (h *RevalidateHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Revalidation API is working",
		"usage": gin.H{
			"POST":        "/api/revalidate?path=/page/{id}",
			"description": "Use POST to revalidate specific paths or tags",
		},
	})
}
