package webhook

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation      = "VALIDATION_FAILED"
	TextCodeUnauthorized    = "UNAUTHORIZED"
	TextCodeHandlerFailed   = "HANDLER_FAILED"
	TextCodeInvalidSettings = "INVALID_SETTINGS"
)

var errNoSettings = goerrors.New("webhook: settings provider is not configured", goerrors.CategoryInternal).
	WithCode(http.StatusInternalServerError).
	WithTextCode("INTERNAL")

var errNoSecret = goerrors.New("webhook: shared secret (password) is not configured", goerrors.CategoryBadInput).
	WithCode(http.StatusInternalServerError).
	WithTextCode(TextCodeInvalidSettings).
	WithMetadata(map[string]any{"field": "password"})

func validationError(message string, field string) error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeValidation).
		WithMetadata(map[string]any{"field": field})
}

func authenticationError(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TextCodeUnauthorized)
}

func handlerError(source error, topic string) error {
	return goerrors.Wrap(source, goerrors.CategoryOperation, "webhook: handler failed for "+topic).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeHandlerFailed).
		WithMetadata(map[string]any{"topic": topic})
}

// IsValidationError reports a malformed inbound request.
func IsValidationError(err error) bool {
	return hasCategory(err, goerrors.CategoryValidation)
}

// IsAuthenticationError reports a signature mismatch.
func IsAuthenticationError(err error) bool {
	return hasCategory(err, goerrors.CategoryAuth)
}

func hasCategory(err error, category goerrors.Category) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.Category == category
}
