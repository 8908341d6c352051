package shopify

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionTokenClaims struct {
	jwt.RegisteredClaims

	// Shopify uses custom claims; we only rely on a few.
	Dest string `json:"dest,omitempty"` // e.g. https://{shop}
}

type VerifiedSession struct {
	ShopDomain string
	ExpiresAt  time.Time
}

// VerifySessionToken verifies an embedded admin session token (JWT, HS256) against the
// Public app settings: signed with the shared secret, audience = api_key, dest = configured shop.
func VerifySessionToken(tokenString string, s Settings, now time.Time) (*VerifiedSession, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, authError("shopify: missing session token")
	}
	secret := s.Secret()
	if secret == "" {
		return nil, settingsError("shopify: session tokens need a shared secret", "password")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	claims := &SessionTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, authError("shopify: invalid session token: " + err.Error())
	}
	if !tok.Valid {
		return nil, authError("shopify: invalid session token")
	}

	if s.APIKey != "" && !slices.Contains([]string(claims.Audience), s.APIKey) {
		return nil, authError("shopify: session token audience mismatch")
	}

	shopDomain := shopFromClaims(claims)
	if shopDomain == "" {
		return nil, authError("shopify: missing shop in session token")
	}
	if _, host := splitShopURL(s.ShopURL); host != "" && !strings.EqualFold(host, shopDomain) {
		return nil, authError("shopify: session token issued for another shop")
	}

	return &VerifiedSession{
		ShopDomain: shopDomain,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func shopFromClaims(c *SessionTokenClaims) string {
	// Prefer dest, fall back to the issuer ("https://{shop}/admin").
	for _, v := range []string{c.Dest, c.Issuer} {
		if _, host := splitShopURL(v); host != "" {
			return host
		}
	}
	return ""
}
