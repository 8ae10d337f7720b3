// Order intake and back office API for custom insoles.
//
// @title                      Plantillas a medida API
// @version                    1.0
// @description                Formulario publico de pedidos y back office.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
//
//go:generate swag init -g cmd/server/main.go -o docs --parseInternal
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/notify"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/router"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if cfg.RunMigrations {
		if err := infra.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_URL not set: webhook syncs run inline")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ext := router.Integrations{
		Mailer:  newMailer(cfg),
		Breaker: infra.NewBreaker("sheets", 5, time.Minute),
	}
	if cfg.SheetsEnabled() {
		sheets, err := infra.NewSheetsClient(ctx, cfg, ext.Breaker)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build google sheets client")
		}
		ext.Sheets = sheets
	} else {
		log.Warn().Msg("google sheets not configured: spreadsheet sync disabled")
	}

	svcs := router.NewServices(cfg, db, rdb, ext)

	var pool *worker.Pool
	if rdb != nil {
		pool = worker.NewPool(rdb, map[string]worker.Handler{
			worker.JobSheetsSync: worker.NewSheetsSyncHandler(svcs.Integrations),
		})
		pool.Start(ctx, cfg.WorkerPoolSize)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(cfg, db, rdb, svcs, ext),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("order API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()
	if pool != nil {
		pool.Wait()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}

// setupLogger: development pretty console, production JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// newMailer returns nil (an untyped nil interface) when email is disabled.
func newMailer(cfg *config.Config) notify.Mailer {
	switch cfg.EmailProvider {
	case "api":
		if cfg.EmailAPIKey == "" || cfg.EmailFrom == "" {
			log.Warn().Msg("EMAIL_PROVIDER=api without EMAIL_API_KEY or EMAIL_FROM: email disabled")
			return nil
		}
		return infra.NewEmailAPIClient(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom)
	case "smtp":
		if cfg.SMTPHost == "" {
			log.Warn().Msg("EMAIL_PROVIDER=smtp without SMTP_HOST: email disabled")
			return nil
		}
		return infra.NewSMTPMailer(cfg)
	default:
		log.Warn().Str("provider", cfg.EmailProvider).Msg("email disabled")
		return nil
	}
}
