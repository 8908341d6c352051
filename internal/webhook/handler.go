package webhook

import (
	"net/http"

	"shopbridge/internal/api"
)

// Handler exposes the Dispatcher as the inbound webhook endpoint.
type Handler struct {
	Dispatcher Dispatcher
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Dispatcher.Handle(r.Context(), r); err != nil {
		api.WriteServiceError(w, err)
		return
	}

	// Shopify expects a 200 quickly.
	w.WriteHeader(http.StatusOK)
}
