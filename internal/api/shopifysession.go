package api

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"shopbridge/pkg/shopify"
)

// SessionAuth guards the admin API with Shopify embedded session tokens.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// Tokens are checked against the current settings (shared secret, api key, shop host).
// Outside prod a request without Authorization is let through to keep local testing simple;
// Private apps have no embedded admin, so they rely on that fallback or a network boundary.
func SessionAuth(prod bool, settings shopify.SettingsProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				if !prod {
					next.ServeHTTP(w, r)
					return
				}
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			s, err := settings.Settings(r.Context())
			if err != nil {
				WriteServiceError(w, err)
				return
			}

			vs, err := shopify.VerifySessionToken(authz[7:], s, time.Now())
			if err != nil {
				log.WithError(err).Debug("api: session token rejected")
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), vs)))
		})
	}
}
