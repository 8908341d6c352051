package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"shopbridge/internal/events"
	"shopbridge/internal/httpapi"
	"shopbridge/internal/settings"
	"shopbridge/internal/webhook"
	"shopbridge/pkg/config"
	"shopbridge/pkg/db"
	"shopbridge/pkg/shopify"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if db.Configured(cfg) {
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("db open")
		}
		defer conn.Close()
		pool = conn

		if cfg.MigrationsPath != "" {
			if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
				log.WithError(err).Fatal("migrate")
			}
		}
	}

	provider, closeProvider := settingsProvider(cfg, pool)
	defer closeProvider()

	deps := httpapi.Dependencies{
		Cfg:      cfg,
		Settings: provider,
		Client:   shopify.NewClient(provider, &http.Client{Timeout: cfg.Shopify.HTTPTimeout}),
		Handlers: webhook.HandlerMap{},
	}
	if pool != nil {
		ledger := events.NewRepository(pool)
		deps.Recorder = ledger
		deps.Deliveries = ledger
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"addr": cfg.HTTPAddr, "settings": cfg.SettingsBackend}).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http serve")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("http stopped")
}

func setupLogging(cfg config.Config) {
	if cfg.IsProd() {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}

// settingsProvider picks the store the settings record is read from on every call.
func settingsProvider(cfg config.Config, pool *pgxpool.Pool) (shopify.SettingsProvider, func()) {
	switch cfg.SettingsBackend {
	case config.SettingsBackendPostgres:
		if pool == nil {
			log.Fatal("settings backend postgres needs a database")
		}
		return settings.NewRepository(pool), func() {}
	case config.SettingsBackendRedis:
		cli := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return settings.NewRedisStore(cli, cfg.Redis.SettingsKey), func() { _ = cli.Close() }
	case config.SettingsBackendEnv, "":
		return settings.EnvProvider{}, func() {}
	default:
		log.WithField("backend", cfg.SettingsBackend).Fatal("unknown settings backend")
		return nil, nil
	}
}
