package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lumistore/backoffice/internal/cache"
	"github.com/lumistore/backoffice/internal/db"
	"github.com/lumistore/backoffice/internal/handlers"
	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/middleware"
	"github.com/lumistore/backoffice/internal/render"
	"github.com/lumistore/backoffice/internal/repos"
	"github.com/lumistore/backoffice/internal/server"
	"github.com/lumistore/backoffice/internal/services"
	"github.com/lumistore/backoffice/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	baseURL := utils.GetEnv("BASE_URL", "http://localhost:"+port, log)
	cacheTTL := utils.GetEnvAsInt("PAGE_CACHE_TTL", 3600, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)

	// Store
	log.Info("Setting up store from main...")
	var pageRepo repos.PageRepo
	var productRepo repos.ProductRepo
	sqliteService, err := db.NewSQLiteService(log)
	if err != nil {
		log.Warn("SQLite init failed, falling back to the in-memory store", "error", err)
		pageRepo = repos.NewMemoryPageRepo(repos.SeedPages())
		productRepo = repos.NewMemoryProductRepo(repos.SeedProducts())
	} else {
		if err := sqliteService.AutoMigrateAll(&repos.PageRow{}, &repos.ProductRow{}); err != nil {
			log.Error("SQLite auto migration failed", "error", err)
			os.Exit(1)
		}
		if err := repos.SeedDatabase(context.Background(), sqliteService.DB()); err != nil {
			log.Error("Seeding the store failed", "error", err)
			os.Exit(1)
		}
		pageRepo = repos.NewGormPageRepo(sqliteService.DB(), log)
		productRepo = repos.NewGormProductRepo(sqliteService.DB(), log)
	}

	// Render cache
	ttl := time.Duration(cacheTTL) * time.Second
	var renderCache cache.RenderCache
	if redisAddr != "" {
		renderCache, err = cache.NewRedisCache(redisAddr, ttl, log)
		if err != nil {
			log.Warn("Could not connect to Redis, using the in-process cache", "addr", redisAddr, "error", err)
			renderCache = cache.NewMemoryCache(ttl)
		}
	} else {
		renderCache = cache.NewMemoryCache(ttl)
	}

	// Services
	log.Info("Setting up services from main...")
	revalService := services.NewRevalidationService(renderCache, log)
	pageService := services.NewPageService(pageRepo, log)
	compositionService := services.NewCompositionService(pageRepo, revalService, log)
	productService := services.NewProductService(productRepo, log)
	editorService := services.NewEditorService(productRepo, log)
	publishService := services.NewPublishService(
		pageRepo,
		productRepo,
		renderCache,
		render.NewPublicRenderer(),
		render.NewPreviewRenderer(),
		log,
	)

	// Hourly sweep of stale rendered pages
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@hourly", func() {
		revalService.Sweep(context.Background())
	}); err != nil {
		log.Error("Could not schedule the cache sweep", "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Handlers
	log.Info("Setting up handlers from main...")
	pageHandler := handlers.NewPageHandler(log, pageService, compositionService, publishService)
	productHandler := handlers.NewProductHandler(log, productService)
	editorHandler := handlers.NewEditorHandler(log, editorService, pageService)
	revalidateHandler := handlers.NewRevalidateHandler(log, revalService)
	publicHandler := handlers.NewPublicHandler(log, publishService, pageService, baseURL)

	router := server.NewRouter(server.RouterConfig{
		PageHandler:       pageHandler,
		ProductHandler:    productHandler,
		EditorHandler:     editorHandler,
		RevalidateHandler: revalidateHandler,
		PublicHandler:     publicHandler,
		RequestLogger:     middleware.NewRequestLogger(log),
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
