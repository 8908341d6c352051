package shopify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	defaultHTTPTimeout = 30 * time.Second

	headerAccessToken = "X-Shopify-Access-Token"
)

// Doer is the session the client sends requests through. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the storefront admin REST API. Settings are fetched from the provider
// on every request, so credential changes apply without a restart.
type Client struct {
	HTTPClient Doer
	Settings   SettingsProvider
}

func NewClient(settings SettingsProvider, httpClient Doer) Client {
	return Client{HTTPClient: httpClient, Settings: settings}
}

// Object is one JSON object as returned by the API.
type Object = map[string]any

// Get issues an authenticated GET and decodes the JSON body into out (when non-nil).
func (c Client) Get(ctx context.Context, path string, out any) error {
	_, err := c.doJSON(ctx, http.MethodGet, path, nil, out)
	return err
}

// Post serializes body, issues an authenticated POST and decodes the response into out.
func (c Client) Post(ctx context.Context, path string, body any, out any) error {
	_, err := c.doJSON(ctx, http.MethodPost, path, body, out)
	return err
}

// Delete issues an authenticated DELETE. The response body is ignored.
func (c Client) Delete(ctx context.Context, path string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// BuildURL resolves an admin path against the shop host. Private apps get api_key:password
// as URL userinfo; Public apps get a bare URL.
func BuildURL(s Settings, path string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	scheme, host := splitShopURL(s.ShopURL)

	p, rawQuery, _ := strings.Cut("/"+strings.TrimLeft(strings.TrimSpace(path), "/"), "?")
	u := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     p,
		RawQuery: rawQuery,
	}
	// Callers pass escaped segments (see FetchCustomerByID); keep them escaped once.
	if unescaped, err := url.PathUnescape(p); err == nil && unescaped != p {
		u.Path = unescaped
		u.RawPath = p
	}
	if s.AppType == AppTypePrivate {
		u.User = url.UserPassword(s.APIKey, s.Password)
	}
	return u.String(), nil
}

// BuildHeader returns the request headers for s. Only Public apps carry the access token.
func BuildHeader(s Settings) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if s.AppType == AppTypePublic {
		h.Set(headerAccessToken, s.AccessToken)
	}
	return h
}

func (c Client) doJSON(ctx context.Context, method, path string, reqBody any, respBody any) (int, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.Settings == nil {
		return 0, settingsError("shopify: settings provider is not configured", "settings")
	}

	s, err := c.Settings.Settings(ctx)
	if err != nil {
		return 0, err
	}
	u, err := BuildURL(s, path)
	if err != nil {
		return 0, err
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return 0, badInput("shopify: encode request body: " + err.Error())
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, transportError(err, method, path)
	}
	req.Header = BuildHeader(s)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, transportError(err, method, path)
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, transportError(readErr, method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, remoteAPIError(method, path, resp.StatusCode, b)
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return resp.StatusCode, decodeError(err, path, b)
		}
	}

	return resp.StatusCode, nil
}
