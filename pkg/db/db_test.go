package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopbridge/pkg/config"
)

func TestConnectionURLs(t *testing.T) {
	cfg := config.Config{DB: config.DBConfig{
		Host: "db", Port: "5432", Name: "shopbridge", User: "u", Password: "p",
	}}
	assert.Equal(t, "postgres://u:p@db:5432/shopbridge?sslmode=disable", RuntimeURL(cfg))
	assert.Equal(t, RuntimeURL(cfg), MigrationURL(cfg))
	assert.False(t, Configured(cfg))

	cfg.DatabaseURL = "postgres://pooler/db?pgbouncer=true"
	cfg.DirectURL = "postgres://direct/db"
	assert.Equal(t, cfg.DatabaseURL, RuntimeURL(cfg))
	assert.Equal(t, cfg.DirectURL, MigrationURL(cfg))
	assert.True(t, Configured(cfg))
}
