package shopify

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeRemoteAPI       = "REMOTE_API_ERROR"
	TextCodeRemoteTransport = "REMOTE_TRANSPORT_ERROR"
	TextCodeRemoteDecode    = "REMOTE_DECODE_ERROR"
	TextCodeInvalidSettings = "INVALID_SETTINGS"
	TextCodeBadInput        = "VALIDATION_FAILED"
	TextCodeUnauthorized    = "UNAUTHORIZED"
)

// remoteAPIError reports a non-2xx response. Code carries the remote status.
func remoteAPIError(method, path string, status int, body []byte) error {
	msg := fmt.Sprintf("shopify api error: %s %s status=%d", method, path, status)
	// Surface Shopify's error body so callers can see missing scopes, etc.
	if len(body) > 0 {
		msg += " body=" + string(body)
	}
	return goerrors.New(msg, goerrors.CategoryExternal).
		WithCode(status).
		WithTextCode(TextCodeRemoteAPI).
		WithMetadata(map[string]any{"method": method, "path": path, "status": status})
}

func transportError(source error, method, path string) error {
	return goerrors.Wrap(source, goerrors.CategoryExternal, fmt.Sprintf("shopify request failed: %s %s", method, path)).
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeRemoteTransport).
		WithMetadata(map[string]any{"method": method, "path": path})
}

func decodeError(source error, path string, body []byte) error {
	msg := fmt.Sprintf("decode shopify response failed: %s", path)
	if len(body) > 0 {
		msg += " body=" + truncate(string(body), 512)
	}
	if source == nil {
		return goerrors.New(msg, goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(TextCodeRemoteDecode)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, msg).
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeRemoteDecode)
}

func settingsError(message, field string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidSettings).
		WithMetadata(map[string]any{"field": field})
}

func badInput(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeBadInput)
}

func authError(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TextCodeUnauthorized)
}

// IsRemoteAPIError reports whether err is a non-2xx response from the platform.
func IsRemoteAPIError(err error) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.TextCode == TextCodeRemoteAPI
}

// RemoteStatus returns the remote HTTP status carried by a RemoteAPIError, or 0.
func RemoteStatus(err error) int {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeRemoteAPI {
		return rich.Code
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
