package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"shopbridge/internal/api"
	"shopbridge/internal/events"
	"shopbridge/pkg/shopify"
)

// DeliveryLister reads the inbound delivery ledger.
type DeliveryLister interface {
	ListRecent(ctx context.Context, limit int) ([]events.Delivery, error)
}

// Handlers expose the outbound client to operators. Collection endpoints are read-only;
// the webhook endpoints change the remote subscription set.
type Handlers struct {
	Client shopify.Client

	// Deliveries is nil when no database is configured.
	Deliveries DeliveryLister
}

func (h Handlers) Collection(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	if !shopify.IsResource(resource) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "unknown resource")
		return
	}

	items, err := h.Client.FetchCollection(r.Context(), resource)
	if err != nil {
		log.WithError(err).WithField("resource", resource).Warn("admin: collection fetch failed")
		api.WriteServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h Handlers) Customer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	customer, ok := h.Client.FetchCustomerByID(r.Context(), id)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "customer not found")
		return
	}
	shopify.LabelAddresses(customer)
	api.WriteJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

func (h Handlers) ProductCollections(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	collections, ok := h.Client.FetchCollectionsByProductID(r.Context(), id)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "collections not available")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": collections})
}

func (h Handlers) ListWebhooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := h.Client.ListWebhooks(r.Context())
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": hooks})
}

// InstallWebhooks subscribes the configured address to every known topic.
func (h Handlers) InstallWebhooks(w http.ResponseWriter, r *http.Request) {
	created, err := h.Client.CreateAllWebhooks(r.Context())
	if err != nil {
		operator(r).WithError(err).WithField("created", len(created)).Warn("admin: webhook install stopped")
		api.WriteServiceError(w, err)
		return
	}
	operator(r).WithField("created", len(created)).Info("admin: webhooks installed")
	api.WriteJSON(w, http.StatusCreated, map[string]any{"items": created, "count": len(created)})
}

// DeleteWebhooks removes every existing subscription.
func (h Handlers) DeleteWebhooks(w http.ResponseWriter, r *http.Request) {
	n, err := h.Client.DeleteAllWebhooks(r.Context())
	if err != nil {
		operator(r).WithError(err).WithField("deleted", n).Warn("admin: webhook delete stopped")
		api.WriteServiceError(w, err)
		return
	}
	operator(r).WithField("deleted", n).Info("admin: webhooks deleted")
	api.WriteJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

func (h Handlers) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	if h.Deliveries == nil {
		api.WriteError(w, http.StatusNotImplemented, "NOT_CONFIGURED", "delivery ledger requires a database")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Deliveries.ListRecent(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("admin: list deliveries failed")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// operator tags log lines with the session that triggered a remote change.
func operator(r *http.Request) *log.Entry {
	shop := "dev"
	if vs := api.SessionFromContext(r.Context()); vs != nil {
		shop = vs.ShopDomain
	}
	return log.WithField("session_shop", shop)
}

// Routes mounts the handlers on r.
func (h Handlers) Routes(r chi.Router) {
	r.Get("/collections/{resource}", h.Collection)
	r.Get("/customers/{id}", h.Customer)
	r.Get("/products/{id}/collections", h.ProductCollections)
	r.Get("/webhooks", h.ListWebhooks)
	r.Post("/webhooks", h.InstallWebhooks)
	r.Delete("/webhooks", h.DeleteWebhooks)
	r.Get("/deliveries", h.ListDeliveries)
}
