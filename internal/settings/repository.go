package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopbridge/pkg/shopify"
)

// Repository keeps the settings record as the single row of shopify_settings.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Settings(ctx context.Context) (shopify.Settings, error) {
	const q = `
SELECT app_type, COALESCE(api_key,''), COALESCE(password,''), shopify_url,
       COALESCE(access_token,''), COALESCE(webhook_address,'')
FROM shopify_settings
WHERE id = 1
`
	var (
		s       shopify.Settings
		appType string
	)
	err := r.db.QueryRow(ctx, q).Scan(
		&appType, &s.APIKey, &s.Password, &s.ShopURL, &s.AccessToken, &s.WebhookAddress,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return shopify.Settings{}, notFound("postgres")
	}
	if err != nil {
		return shopify.Settings{}, storeError(err, "postgres")
	}
	s.AppType = normalizeAppType(appType)
	return s, nil
}

// Save replaces the stored record. Used by the seeding tool only.
func (r *Repository) Save(ctx context.Context, s shopify.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	const q = `
INSERT INTO shopify_settings (id, app_type, api_key, password, shopify_url, access_token, webhook_address, updated_at)
VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (id) DO UPDATE SET
  app_type = EXCLUDED.app_type,
  api_key = EXCLUDED.api_key,
  password = EXCLUDED.password,
  shopify_url = EXCLUDED.shopify_url,
  access_token = EXCLUDED.access_token,
  webhook_address = EXCLUDED.webhook_address,
  updated_at = NOW()
`
	_, err := r.db.Exec(ctx, q, string(s.AppType), s.APIKey, s.Password, s.ShopURL, s.AccessToken, s.WebhookAddress)
	return err
}
