package webhook

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"shopbridge/internal/events"
	"shopbridge/pkg/shopify"
)

// HandlerFunc is the business logic for one topic.
type HandlerFunc func(ctx context.Context, payload shopify.Object) error

// HandlerMap routes a topic string (e.g. "orders/create") to its handler.
type HandlerMap map[string]HandlerFunc

func (m HandlerMap) Lookup(topic string) (HandlerFunc, bool) {
	h, ok := m[topic]
	return h, ok && h != nil
}

// Recorder keeps a ledger of authenticated deliveries.
type Recorder interface {
	Record(ctx context.Context, d events.Delivery) error
}

// Dispatcher runs extract -> authenticate -> dispatch for every inbound call.
type Dispatcher struct {
	Settings shopify.SettingsProvider
	Handlers HandlerMap

	// Recorder is optional.
	Recorder Recorder
}

// Handle processes one inbound request. Nothing reaches a handler unless the
// signature matched.
func (d Dispatcher) Handle(ctx context.Context, r *http.Request) (handled bool, err error) {
	req, err := Extract(r)
	if err != nil {
		return false, err
	}

	if d.Settings == nil {
		return false, errNoSettings
	}
	s, err := d.Settings.Settings(ctx)
	if err != nil {
		return false, err
	}
	if s.Secret() == "" {
		return false, errNoSecret
	}
	v, err := Authenticate(req, s.Secret())
	if err != nil {
		log.WithFields(log.Fields{"topic": req.Topic, "shop": req.ShopDomain}).Warn("webhook: signature rejected")
		return false, err
	}

	return d.dispatch(ctx, v)
}

// dispatch invokes the handler registered for the topic. Unknown topics are a no-op.
func (d Dispatcher) dispatch(ctx context.Context, v Verified) (bool, error) {
	req := v.Request()
	if req.Topic == "" || req.Payload == nil {
		return false, authenticationError("webhook: request was not authenticated")
	}
	logger := log.WithFields(log.Fields{"topic": req.Topic, "shop": req.ShopDomain, "webhook_id": req.WebhookID})

	handled := false
	if h, ok := d.Handlers.Lookup(req.Topic); ok {
		if err := h(ctx, req.Payload); err != nil {
			logger.WithError(err).Error("webhook: handler failed")
			return false, handlerError(err, req.Topic)
		}
		handled = true
	}
	logger.WithField("handled", handled).Debug("webhook: dispatched")

	if d.Recorder != nil {
		err := d.Recorder.Record(ctx, events.Delivery{
			Topic:       req.Topic,
			ShopDomain:  req.ShopDomain,
			WebhookID:   req.WebhookID,
			PayloadHash: req.payloadHash(),
			Handled:     handled,
			ReceivedAt:  time.Now().UTC(),
		})
		if err != nil {
			logger.WithError(err).Warn("webhook: record delivery failed")
		}
	}
	return handled, nil
}
