package db

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"

	"shopbridge/pkg/config"
)

const DefaultMigrationsPath = "file://migrations"

// MigrateConfig applies every pending migration found at migrationsPath.
func MigrateConfig(migrationsPath string, cfg config.Config) error {
	if migrationsPath == "" {
		migrationsPath = DefaultMigrationsPath
	}
	m, err := migrate.New(migrationsPath, MigrationURL(cfg))
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("db: schema up to date")
			return nil
		}
		return err
	}
	log.WithField("source", migrationsPath).Info("db: migrations applied")
	return nil
}
