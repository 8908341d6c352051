package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbridge/internal/webhook"
	"shopbridge/pkg/config"
	"shopbridge/pkg/shopify"
)

const (
	shopHost = "my-shop.myshopify.com"
	secret   = "hush"
	apiKey   = "app-key"
)

func testRouter(t *testing.T, appEnv string, remote *httptest.Server) http.Handler {
	t.Helper()
	shopURL := shopHost
	if remote != nil {
		shopURL = remote.URL
	}
	settings := shopify.StaticSettings(shopify.Settings{
		AppType:     shopify.AppTypePublic,
		APIKey:      apiKey,
		Password:    secret,
		ShopURL:     shopURL,
		AccessToken: "tok",
	})
	var httpClient shopify.Doer
	if remote != nil {
		httpClient = remote.Client()
	}
	return NewRouter(Dependencies{
		Cfg:      config.Config{AppEnv: appEnv, AdminAllowedOrigins: []string{"https://admin.example.com"}},
		Settings: settings,
		Client:   shopify.NewClient(settings, httpClient),
		Handlers: webhook.HandlerMap{},
	})
}

func sessionToken(t *testing.T, dest string) string {
	t.Helper()
	claims := shopify.SessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    dest + "/admin",
			Audience:  jwt.ClaimStrings{apiKey},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Dest: dest,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(t, "dev", nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestInboundWebhookRoute(t *testing.T) {
	h := testRouter(t, "prod", nil)
	body := `{"id":1}`
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(body))

	send := func(sig string) int {
		r := httptest.NewRequest(http.MethodPost, "/v1/webhooks/shopify", strings.NewReader(body))
		r.Header.Set(webhook.HeaderTopic, "orders/create")
		r.Header.Set(webhook.HeaderHMAC, sig)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send(base64.StdEncoding.EncodeToString(mac.Sum(nil))))
	assert.Equal(t, http.StatusUnauthorized, send("bm9wZQ=="))
	assert.Equal(t, http.StatusBadRequest, send(""))
}

func TestAdminRequiresSessionInProd(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"webhooks":[]}`))
	}))
	defer remote.Close()
	h := testRouter(t, "prod", remote)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/admin/webhooks", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// The session token must name the configured shop host.
	host := strings.TrimPrefix(remote.URL, "http://")
	r := httptest.NewRequest(http.MethodGet, "/v1/admin/webhooks", nil)
	r.Header.Set("Authorization", "Bearer "+sessionToken(t, "https://"+host))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)

	r = httptest.NewRequest(http.MethodGet, "/v1/admin/webhooks", nil)
	r.Header.Set("Authorization", "Bearer "+sessionToken(t, "https://other-shop.myshopify.com"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminPreflight(t *testing.T) {
	h := testRouter(t, "prod", nil)

	r := httptest.NewRequest(http.MethodOptions, "/v1/admin/webhooks", nil)
	r.Header.Set("Origin", "https://admin.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://admin.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodOptions, "/v1/admin/webhooks", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
