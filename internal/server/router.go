package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumistore/backoffice/internal/handlers"
	"github.com/lumistore/backoffice/internal/middleware"
)

type RouterConfig struct {
	PageHandler       *handlers.PageHandler
	ProductHandler    *handlers.ProductHandler
	EditorHandler     *handlers.EditorHandler
	RevalidateHandler *handlers.RevalidateHandler
	PublicHandler     *handlers.PublicHandler
	RequestLogger     *middleware.RequestLogger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handler())
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/page/:id", cfg.PublicHandler.Page)
	router.GET("/sitemap.xml", cfg.PublicHandler.Sitemap)
	router.GET("/robots.txt", cfg.PublicHandler.Robots)

	// ===============
	// || Admin API ||
	// ===============
	api := router.Group("/api")
	{
		api.POST("/revalidate", cfg.RevalidateHandler.Post)
		api.GET("/revalidate", cfg.RevalidateHandler.Get)

		api.GET("/pages", cfg.PageHandler.List)
		api.GET("/pages/published", cfg.PageHandler.ListPublished)
		api.POST("/pages", cfg.PageHandler.Create)
		api.GET("/pages/:id", cfg.PageHandler.Get)
		api.PUT("/pages/:id", cfg.PageHandler.Update)
		api.DELETE("/pages/:id", cfg.PageHandler.Delete)
		api.GET("/pages/:id/preview", cfg.PageHandler.Preview)
		api.POST("/pages/:id/blocks", cfg.PageHandler.AddBlock)
		api.POST("/pages/:id/blocks/reorder", cfg.PageHandler.ReorderBlocks)
		api.PUT("/pages/:id/blocks/:blockId", cfg.PageHandler.UpdateBlock)
		api.PUT("/pages/:id/blocks/:blockId/visibility", cfg.PageHandler.SetBlockVisibility)
		api.DELETE("/pages/:id/blocks/:blockId", cfg.PageHandler.RemoveBlock)
		api.GET("/pages/:id/blocks/:blockId/status", cfg.EditorHandler.BlockStatus)

		api.GET("/editor/products", cfg.EditorHandler.Candidates)
		api.POST("/editor/selection", cfg.EditorHandler.ToggleSelection)

		api.GET("/products", cfg.ProductHandler.List)
		api.GET("/products/search", cfg.ProductHandler.Search)
		api.GET("/products/:id", cfg.ProductHandler.Get)
		api.POST("/products", cfg.ProductHandler.Create)
		api.PUT("/products/:id", cfg.ProductHandler.Update)
	}

	return router
}
