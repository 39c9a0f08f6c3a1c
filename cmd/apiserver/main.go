// Command apiserver serves the article query and admin API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/padmin-io/newsboard/internal/articles"
	"github.com/padmin-io/newsboard/internal/auth"
	"github.com/padmin-io/newsboard/internal/config"
	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/internal/rest"
	"github.com/padmin-io/newsboard/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("NEWSBOARD_JWT_SECRET is required")
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN, logg)
	if err != nil {
		logg.ErrorObj("database connection failed", "startup_error", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	e := rest.NewRouter(rest.RouterConfig{
		Articles: articles.NewService(postgres.NewArticleRepository(db), logg),
		Login:    auth.NewAuthenticator(postgres.NewUserRepository(db), tokens),
		Tokens:   tokens,
		DB:       db,
		Logger:   logg,
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.ErrorObj("http server stopped", "server_error", map[string]any{
				"error": err.Error(),
			})
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.ErrorObj("graceful shutdown failed", "shutdown_error", map[string]any{
			"error": err.Error(),
		})
	}
}
