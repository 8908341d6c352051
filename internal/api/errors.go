package api

import (
	"net/http"

	"github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	log "github.com/sirupsen/logrus"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorEnvelope{
		Error: APIError{Code: code, Message: message},
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("api: encode response failed")
	}
}

// WriteServiceError maps a go-errors envelope onto the error envelope. Remote platform
// failures become 502; misconfigured settings are a server problem, not the caller's.
func WriteServiceError(w http.ResponseWriter, err error) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		log.WithError(err).Error("api: unclassified error")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	status := rich.Code
	switch {
	case rich.Category == goerrors.CategoryExternal:
		status = http.StatusBadGateway
	case rich.TextCode == "INVALID_SETTINGS":
		status = http.StatusInternalServerError
	}
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}

	code := rich.TextCode
	if code == "" {
		code = "INTERNAL"
	}
	WriteError(w, status, code, rich.Message)
}
