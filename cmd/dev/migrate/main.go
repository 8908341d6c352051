package main

import (
	"context"
	"flag"
	"os"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"shopbridge/internal/settings"
	"shopbridge/pkg/config"
	"shopbridge/pkg/db"
)

func main() {
	seed := flag.Bool("seed", false, "store the SHOPIFY_* settings from the environment into the configured settings backend")
	flag.Parse()

	cfg := config.Load()
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = db.DefaultMigrationsPath
	}

	// This uses DIRECT_URL if set.
	if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
		log.WithError(err).Error("migrate failed")
		os.Exit(1)
	}

	// Sanity check the runtime connection. DSNs are never logged.
	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("runtime db open failed")
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("migrations applied")

	if !*seed {
		return
	}
	rec := settings.FromConfig(cfg.Shopify)
	switch cfg.SettingsBackend {
	case config.SettingsBackendRedis:
		cli := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer cli.Close()
		err = settings.NewRedisStore(cli, cfg.Redis.SettingsKey).Save(ctx, rec)
	default:
		err = settings.NewRepository(pool).Save(ctx, rec)
	}
	if err != nil {
		log.WithError(err).Error("seed settings failed")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"backend": cfg.SettingsBackend, "app_type": rec.AppType}).Info("settings seeded")
}
