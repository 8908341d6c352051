package settings

import (
	"context"
	"os"
	"strings"

	"shopbridge/pkg/config"
	"shopbridge/pkg/shopify"
)

// EnvProvider reads the settings record from the process environment on every call.
type EnvProvider struct {
	// Lookup defaults to os.Getenv.
	Lookup func(key string) string
}

func (p EnvProvider) Settings(context.Context) (shopify.Settings, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.Getenv
	}
	get := func(k string) string { return strings.TrimSpace(lookup(k)) }

	appType := get("SHOPIFY_APP_TYPE")
	if appType == "" {
		appType = string(shopify.AppTypePrivate)
	}
	return shopify.Settings{
		AppType:        normalizeAppType(appType),
		APIKey:         get("SHOPIFY_API_KEY"),
		Password:       get("SHOPIFY_PASSWORD"),
		ShopURL:        get("SHOPIFY_URL"),
		AccessToken:    get("SHOPIFY_ACCESS_TOKEN"),
		WebhookAddress: get("SHOPIFY_WEBHOOK_ADDRESS"),
	}, nil
}

// FromConfig converts the loaded config into a settings record.
func FromConfig(cfg config.ShopifyConfig) shopify.Settings {
	return shopify.Settings{
		AppType:        normalizeAppType(cfg.AppType),
		APIKey:         cfg.APIKey,
		Password:       cfg.Password,
		ShopURL:        cfg.ShopURL,
		AccessToken:    cfg.AccessToken,
		WebhookAddress: cfg.WebhookAddress,
	}
}

// normalizeAppType keeps unknown values as-is so Settings.Validate can report them.
func normalizeAppType(v string) shopify.AppType {
	if t, ok := shopify.ParseAppType(v); ok {
		return t
	}
	return shopify.AppType(strings.TrimSpace(v))
}
