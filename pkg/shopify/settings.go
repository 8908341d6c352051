package shopify

import (
	"context"
	"strings"
)

type AppType string

const (
	// AppTypePrivate embeds api_key:password as URL userinfo.
	AppTypePrivate AppType = "Private"
	// AppTypePublic sends the access token in the X-Shopify-Access-Token header.
	AppTypePublic AppType = "Public"
)

// ParseAppType accepts the app type case-insensitively.
func ParseAppType(v string) (AppType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "private":
		return AppTypePrivate, true
	case "public":
		return AppTypePublic, true
	default:
		return "", false
	}
}

// Settings is the remote integration record. It is owned by an external store and read
// once per operation.
type Settings struct {
	AppType     AppType `json:"app_type"`
	APIKey      string  `json:"api_key"`
	Password    string  `json:"password"`
	ShopURL     string  `json:"shopify_url"`
	AccessToken string  `json:"access_token"`

	// WebhookAddress is the callback URL used for every subscribed topic.
	WebhookAddress string `json:"webhook_address"`
}

// Validate checks that the record carries exactly the credentials its app type needs.
func (s Settings) Validate() error {
	if _, host := splitShopURL(s.ShopURL); host == "" {
		return settingsError("shopify: shopify_url is required", "shopify_url")
	}
	switch s.AppType {
	case AppTypePrivate:
		if strings.TrimSpace(s.APIKey) == "" || strings.TrimSpace(s.Password) == "" {
			return settingsError("shopify: private apps require api_key and password", "api_key")
		}
	case AppTypePublic:
		if strings.TrimSpace(s.AccessToken) == "" {
			return settingsError("shopify: public apps require access_token", "access_token")
		}
	default:
		return settingsError("shopify: app_type must be Private or Public", "app_type")
	}
	return nil
}

// Secret is the shared secret used to sign inbound webhooks.
func (s Settings) Secret() string {
	return s.Password
}

// SettingsProvider returns the current settings record. Implementations must not cache.
type SettingsProvider interface {
	Settings(ctx context.Context) (Settings, error)
}

// SettingsFunc adapts a function to SettingsProvider.
type SettingsFunc func(ctx context.Context) (Settings, error)

func (f SettingsFunc) Settings(ctx context.Context) (Settings, error) {
	return f(ctx)
}

// StaticSettings always returns the same record. Handy for tests and CLIs.
type StaticSettings Settings

func (s StaticSettings) Settings(context.Context) (Settings, error) {
	return Settings(s), nil
}

func splitShopURL(raw string) (scheme string, host string) {
	v := strings.TrimSpace(raw)
	scheme = "https"
	if before, after, ok := strings.Cut(v, "://"); ok {
		if before != "" {
			scheme = strings.ToLower(before)
		}
		v = after
	}
	// Drop any path the admin may have pasted along with the host.
	if i := strings.Index(v, "/"); i >= 0 {
		v = v[:i]
	}
	return scheme, v
}
