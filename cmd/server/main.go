package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/config"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/db"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/handler"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/middleware"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/repository"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/router"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/service"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/taxonomy"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "milkmob-api", cfg.LogIPSalt)

	if cfg.MobConfigFile != "" {
		if err := taxonomy.ApplyOverrides(cfg.MobConfigFile); err != nil {
			log.Fatal().Err(err).Str("file", cfg.MobConfigFile).Msg("invalid mob config")
		}
	}

	ctx := context.Background()

	// Persistence is optional: without DATABASE_URL the catalog lives in
	// memory and resets on restart.
	var (
		pool  *pgxpool.Pool
		store repository.MobStore
	)
	if cfg.DatabaseURL != "" {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}

		p, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		pool = p
		store = repository.NewPostgresMobStore(pool)
		log.Info().Msg("using postgres mob store")
	} else {
		store = repository.NewMemoryMobStore()
		log.Info().Msg("using in-memory mob store")
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	var extractor service.MetadataExtractor
	if cfg.MetadataAPIURL != "" {
		extractor = service.NewHTTPMetadataExtractor(cfg.MetadataAPIURL, cfg.ExtractTimeout)
		log.Info().Msg("metadata extraction enabled")
	}

	var search service.ContentSearchService
	if cfg.SearchAPIURL != "" && cfg.SearchAPIKey != "" && cfg.SearchIndexID != "" {
		search = service.NewHTTPContentSearch(cfg.SearchAPIURL, cfg.SearchAPIKey, cfg.SearchTimeout)
		log.Info().Msg("content search enabled")
	}

	handler.InitMetrics(pool)

	validateSvc := service.NewValidateService(
		service.NewScoreService(),
		service.NewMobService(),
		store,
		cache,
		service.NewOSFileInspector(),
		extractor,
		search,
		cfg.SearchIndexID,
		cfg.ExtractTimeout,
	)
	catalogSvc := service.NewCatalogService(store, cache)

	app := fiber.New(fiber.Config{
		AppName:      "MilkMob API",
		ServerHeader: "MilkMob",
		BodyLimit:    int(cfg.MaxUploadSize),
	})

	router.Setup(app, &router.Handlers{
		Validate: handler.NewValidateHandler(validateSvc, cfg.UploadDir, cfg.MaxUploadSize),
		Mob:      handler.NewMobHandler(catalogSvc),
		Stats:    handler.NewStatsHandler(catalogSvc, validateSvc),
		Status:   handler.NewStatusHandler(validateSvc, cache, cfg.UploadDir, pool != nil),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Msg("milkmob backend starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
