package settings

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

func notFound(backend string) error {
	return goerrors.New("settings: no shopify settings stored in "+backend, goerrors.CategoryNotFound).
		WithCode(http.StatusInternalServerError).
		WithTextCode("INVALID_SETTINGS").
		WithMetadata(map[string]any{"backend": backend})
}

func storeError(source error, backend string) error {
	return goerrors.Wrap(source, goerrors.CategoryInternal, "settings: read from "+backend+" failed").
		WithCode(http.StatusInternalServerError).
		WithTextCode("SETTINGS_UNAVAILABLE").
		WithMetadata(map[string]any{"backend": backend})
}

// IsNotFound reports that the backend holds no settings record.
func IsNotFound(err error) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.Category == goerrors.CategoryNotFound
}
