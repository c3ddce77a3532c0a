// Command server runs the personalization backend: the storefront API, the
// order webhook receiver and the expired-delivery sweeper.
//
//	@title			Personalizer API
//	@version		1.0
//	@description	Storefront product personalization: shop catalogs, product toggles, order intake and production records.
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-personalizer-backend/internal/config"
	httpapi "github.com/tbourn/go-personalizer-backend/internal/http"
	"github.com/tbourn/go-personalizer-backend/internal/observability"
	"github.com/tbourn/go-personalizer-backend/internal/repo"
	"github.com/tbourn/go-personalizer-backend/internal/services"
	"github.com/tbourn/go-personalizer-backend/internal/sysutil"
)

var version = "dev"

func main() {
	// .env is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("load .env")
	}

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", cfg.OTEL.ServiceName).Str("version", version).Logger()

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	db, err := repo.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	webhooks := httpapi.RegisterRoutes(r, db, cfg)

	if cfg.WebhookSecret == "" {
		log.Warn().Msg("SHOPIFY_WEBHOOK_SECRET not set; order webhooks will be refused")
	}
	if cfg.DeliveryPurgeInterval > 0 {
		go purgeDeliveries(ctx, webhooks, cfg.DeliveryPurgeInterval)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DBDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// purgeDeliveries removes expired webhook delivery records every interval
// until ctx is done.
func purgeDeliveries(ctx context.Context, svc *services.WebhookService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge webhook deliveries")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged webhook deliveries")
			}
		}
	}
}
