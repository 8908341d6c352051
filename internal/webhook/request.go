package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"shopbridge/pkg/shopify"
)

const (
	HeaderTopic      = "X-Shopify-Topic"
	HeaderHMAC       = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
	HeaderWebhookID  = "X-Shopify-Webhook-Id"

	maxBodyBytes = 10 << 20
)

// Request is one inbound call, alive only while it is being handled.
type Request struct {
	Topic      string
	Signature  string
	Body       []byte
	Payload    shopify.Object
	ShopDomain string
	WebhookID  string
}

// Extract reads the topic and signature headers and parses the body as a JSON object.
// It performs no signature check.
func Extract(r *http.Request) (Request, error) {
	topic := strings.TrimSpace(r.Header.Get(HeaderTopic))
	if topic == "" {
		return Request{}, validationError("webhook: missing "+HeaderTopic+" header", HeaderTopic)
	}
	sig := strings.TrimSpace(r.Header.Get(HeaderHMAC))
	if sig == "" {
		return Request{}, validationError("webhook: missing "+HeaderHMAC+" header", HeaderHMAC)
	}
	if r.Body == nil {
		return Request{}, validationError("webhook: missing body", "body")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return Request{}, validationError("webhook: invalid body", "body")
	}
	if len(body) > maxBodyBytes {
		return Request{}, validationError("webhook: body too large", "body")
	}

	var payload shopify.Object
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return Request{}, validationError("webhook: body is not a json object", "body")
	}

	return Request{
		Topic:      topic,
		Signature:  sig,
		Body:       body,
		Payload:    payload,
		ShopDomain: strings.TrimSpace(r.Header.Get(HeaderShopDomain)),
		WebhookID:  strings.TrimSpace(r.Header.Get(HeaderWebhookID)),
	}, nil
}

func (r Request) payloadHash() string {
	h := sha256.Sum256(r.Body)
	return hex.EncodeToString(h[:])
}
