package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yukikurage/qa-forum-api/internal/cache"
	"github.com/yukikurage/qa-forum-api/internal/config"
	"github.com/yukikurage/qa-forum-api/internal/database"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"github.com/yukikurage/qa-forum-api/internal/server"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg)
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.Migrate(db, log); err != nil {
		log.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		log.Error("failed to create session store", slog.Any("error", err))
		os.Exit(1)
	}

	// The cache is optional; without redis every lookup goes to the database.
	var lookupCache *cache.Store
	if cfg.CacheEnabled {
		lookupCache, err = cache.Connect(context.Background(), cfg.RedisAddr(), log)
		if err != nil {
			log.Warn("cache disabled", slog.Any("error", err))
		} else {
			defer lookupCache.Close()
		}
	}

	suggester := services.NewTagSuggester(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if suggester == nil {
		log.Info("tag suggestions disabled: OPENAI_API_KEY is not set")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := server.NewRouter(server.Deps{
		DB:        db,
		Sessions:  store,
		Logger:    log,
		Registry:  registry,
		Cache:     lookupCache,
		Suggester: suggester,
		PageSize:  cfg.PageSize,
	})

	log.Info("server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
