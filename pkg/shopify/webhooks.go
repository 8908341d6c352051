package shopify

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Webhook is one remote subscription. Subscriptions are created and deleted, never updated.
type Webhook struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	Address   string `json:"address"`
	Format    string `json:"format"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	// Raw is the subscription exactly as the platform returned it, unknown fields included.
	Raw Object `json:"-"`
}

type plainWebhook Webhook

func (w *Webhook) UnmarshalJSON(b []byte) error {
	var p plainWebhook
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw Object
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*w = Webhook(p)
	w.Raw = raw
	return nil
}

// MarshalJSON writes Raw when present so listings round-trip verbatim.
func (w Webhook) MarshalJSON() ([]byte, error) {
	if w.Raw != nil {
		return json.Marshal(w.Raw)
	}
	return json.Marshal(plainWebhook(w))
}

type webhookCreateRequest struct {
	Webhook webhookPayload `json:"webhook"`
}

type webhookPayload struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

type webhookResponse struct {
	Webhook Webhook `json:"webhook"`
}

type webhookListResponse struct {
	Webhooks []Webhook `json:"webhooks"`
}

// CreateWebhook subscribes address to topic. There is no duplicate check: calling it twice
// creates two subscriptions.
func (c Client) CreateWebhook(ctx context.Context, topic string, address string) (Webhook, error) {
	topic = strings.TrimSpace(topic)
	address = strings.TrimSpace(address)
	if topic == "" || address == "" {
		return Webhook{}, badInput("shopify: missing webhook topic or address")
	}

	req := webhookCreateRequest{
		Webhook: webhookPayload{
			Topic:   topic,
			Address: address,
			Format:  "json",
		},
	}
	var resp webhookResponse
	if err := c.Post(ctx, "/admin/webhooks.json", req, &resp); err != nil {
		return Webhook{}, err
	}
	return resp.Webhook, nil
}

func (c Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var resp webhookListResponse
	if err := c.Get(ctx, "/admin/webhooks.json", &resp); err != nil {
		return nil, err
	}
	if resp.Webhooks == nil {
		return []Webhook{}, nil
	}
	return resp.Webhooks, nil
}

func (c Client) DeleteWebhook(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/admin/webhooks/%d.json", id))
}

// DeleteAllWebhooks lists the current subscriptions and deletes them one by one.
// The first failure stops the loop; the count of deletions already done is returned with it.
func (c Client) DeleteAllWebhooks(ctx context.Context) (int, error) {
	hooks, err := c.ListWebhooks(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, h := range hooks {
		if err := c.DeleteWebhook(ctx, h.ID); err != nil {
			log.WithError(err).WithFields(log.Fields{"webhook_id": h.ID, "topic": h.Topic}).Warn("shopify: delete webhook failed")
			return deleted, err
		}
		deleted++
	}
	log.WithField("deleted", deleted).Info("shopify: webhooks removed")
	return deleted, nil
}

// CreateAllWebhooks subscribes the configured webhook address to every entry of Topics.
// It stops at the first failure.
func (c Client) CreateAllWebhooks(ctx context.Context) ([]Webhook, error) {
	if c.Settings == nil {
		return nil, settingsError("shopify: settings provider is not configured", "settings")
	}
	s, err := c.Settings.Settings(ctx)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(s.WebhookAddress)
	if address == "" {
		return nil, settingsError("shopify: webhook_address is required", "webhook_address")
	}

	created := make([]Webhook, 0, len(Topics))
	for _, topic := range Topics {
		h, err := c.CreateWebhook(ctx, topic, address)
		if err != nil {
			log.WithError(err).WithField("topic", topic).Warn("shopify: create webhook failed")
			return created, err
		}
		created = append(created, h)
	}
	log.WithFields(log.Fields{"created": len(created), "address": address}).Info("shopify: webhooks registered")
	return created, nil
}
