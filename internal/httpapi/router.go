package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopbridge/internal/admin"
	"shopbridge/internal/api"
	"shopbridge/internal/webhook"
	"shopbridge/pkg/config"
	"shopbridge/pkg/shopify"
)

type Dependencies struct {
	Cfg      config.Config
	Settings shopify.SettingsProvider
	Client   shopify.Client

	// Handlers holds the business logic per inbound topic. Topics without an entry are acknowledged and ignored.
	Handlers webhook.HandlerMap

	// Ledger is optional; both fields are nil without a database.
	Recorder   webhook.Recorder
	Deliveries admin.DeliveryLister
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	webhookHandler := webhook.Handler{
		Dispatcher: webhook.Dispatcher{
			Settings: deps.Settings,
			Handlers: deps.Handlers,
			Recorder: deps.Recorder,
		},
	}
	adminHandlers := admin.Handlers{
		Client:     deps.Client,
		Deliveries: deps.Deliveries,
	}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Post("/webhooks/shopify", webhookHandler.ServeHTTP)

		// Operator APIs, embedded in the Shopify admin for Public apps.
		r.Route("/admin", func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.AdminAllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
				MaxAgeSeconds:  600,
			}))
			r.Use(api.SessionAuth(deps.Cfg.IsProd(), deps.Settings))

			adminHandlers.Routes(r)
		})
	})

	return r
}
