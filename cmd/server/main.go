package main

import (
	"log/slog"
	"os"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/cache"
	"gamebase/backend/internal/config"
	"gamebase/backend/internal/database"
	"gamebase/backend/internal/handler"
	"gamebase/backend/internal/logging"
	"gamebase/backend/internal/preview"
	"gamebase/backend/internal/router"

	"github.com/gin-gonic/gin"
)

// @title           Gamebase API
// @version         1.0
// @description     Board game catalog, collections and game-night invitations.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it tokens cannot be revoked and previews
	// are fetched on every request.
	var previewCache preview.Cache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		revocations := cache.NewRevocations(client)
		auth.Revoked = revocations
		handler.Revocations = revocations
		previewCache = cache.NewPreviewCache(client, cfg.PreviewCacheTTL)
		slog.Info("redis connected, token revocation and preview cache enabled")
	} else {
		slog.Warn("REDIS_URL not set, token revocation and preview cache disabled")
	}
	handler.Previews = preview.NewFetcher(cfg.PreviewTimeout, previewCache)

	r := router.New(cfg)

	slog.Info("server starting", "addr", cfg.Addr(), "swagger", "/swagger/index.html")
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
