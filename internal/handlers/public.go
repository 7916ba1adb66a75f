package handlers

import (
	"encoding/xml"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/services"
)

const notFoundHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Page not found</title></head>
<body><h1>Page not found</h1><p>The page you requested does not exist or is not published.</p></body>
</html>`

// PublicHandler serves the shopper-facing surface: published pages, the
// sitemap and robots.txt.
type PublicHandler struct {
	log     *logger.Logger
	publish services.PublishService
	pages   services.PageService
	baseURL string
}

func NewPublicHandler(baseLog *logger.Logger, publish services.PublishService, pages services.PageService, baseURL string) *PublicHandler {
	return &PublicHandler{
		log:     baseLog.With("handler", "PublicHandler"),
		publish: publish,
		pages:   pages,
		baseURL: baseURL,
	}
}

// Page serves the cached published rendering. Anything not published is a
// hard not-found, even if the page exists in the store.
func (h *PublicHandler) Page(c *gin.Context) {
	html, err := h.publish.RenderPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundHTML))
			return
		}
		h.log.Error("Published render failed", "page_id", c.Param("id"), "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap lists the service's static entry points plus every published page.
func (h *PublicHandler) Sitemap(c *gin.Context) {
	urls := []sitemapURL{
		{Loc: h.baseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: h.baseURL + "/api/products", ChangeFreq: "daily", Priority: "0.8"},
	}

	pages, err := h.pages.ListPublished(c.Request.Context())
	if err != nil {
		h.log.Error("Sitemap enumeration failed", "error", err)
	} else {
		for _, page := range pages {
			urls = append(urls, sitemapURL{
				Loc:        h.baseURL + "/page/" + page.ID,
				LastMod:    page.UpdatedAt.UTC().Format(time.RFC3339),
				ChangeFreq: "weekly",
				Priority:   "0.7",
			})
		}
	}

	c.XML(http.StatusOK, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// Robots disallows crawling of the editor API namespace.
func (h *PublicHandler) Robots(c *gin.Context) {
	body := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /api/\n" +
		"\n" +
		"Sitemap: " + h.baseURL + "/sitemap.xml\n"
	c.String(http.StatusOK, body)
}
