package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"shopbridge/internal/events"
	"shopbridge/internal/settings"
	"shopbridge/internal/webhook"
	"shopbridge/pkg/config"
	"shopbridge/pkg/db"
)

// devflow seeds the settings row, posts one signed webhook to a running API and
// checks that the delivery landed in the ledger.
func main() {
	var (
		webhookURL = flag.String("webhook-url", "", "local webhook url (defaults to http://localhost<HTTP_ADDR>/v1/webhooks/shopify)")
		topic      = flag.String("topic", "orders/create", "topic to send")
		orderID    = flag.Int64("order-id", time.Now().Unix(), "fake order id for the payload")
		wait       = flag.Duration("wait", 3*time.Second, "how long to wait for the ledger entry")
	)
	flag.Parse()

	cfg := config.Load()
	if *webhookURL == "" {
		*webhookURL = localURL(cfg.HTTPAddr)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.MigrationsPath != "" {
		if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
	}

	rec := settings.FromConfig(cfg.Shopify)
	if err := settings.NewRepository(pool).Save(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "seed settings: %v\n", err)
		os.Exit(1)
	}

	body, _ := json.Marshal(map[string]any{
		"id":          *orderID,
		"email":       "client@example.com",
		"total_price": "100.00",
		"currency":    "USD",
		"customer":    map[string]any{"first_name": "John", "last_name": "Doe"},
	})
	webhookID := fmt.Sprintf("devflow-%d", time.Now().UnixNano())

	req, err := http.NewRequest(http.MethodPost, *webhookURL, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderTopic, *topic)
	req.Header.Set(webhook.HeaderShopDomain, hostOf(rec.ShopURL))
	req.Header.Set(webhook.HeaderHMAC, webhook.Sign(body, rec.Secret()))
	req.Header.Set(webhook.HeaderWebhookID, webhookID)

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post webhook: %v\n", err)
		fmt.Fprintf(os.Stderr, "tip: is the API running with SETTINGS_BACKEND=postgres? webhook_url=%s\n", *webhookURL)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "webhook status=%d body=%s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}

	ledger := events.NewRepository(pool)
	deadline := time.Now().Add(*wait)
	for {
		recent, err := ledger.ListRecent(ctx, 20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list deliveries: %v\n", err)
			os.Exit(1)
		}
		for _, d := range recent {
			if d.WebhookID == webhookID {
				fmt.Printf("delivery recorded: id=%s topic=%s handled=%t hash=%s\n", d.ID, d.Topic, d.Handled, d.PayloadHash)
				return
			}
		}
		if time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "webhook accepted but no ledger entry found; is the API connected to the same database?")
			os.Exit(1)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func localURL(httpAddr string) string {
	addr := strings.TrimSpace(httpAddr)
	if addr == "" {
		addr = ":8081"
	}
	addr = strings.TrimPrefix(addr, "0.0.0.0")
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/v1/webhooks/shopify"
}

func hostOf(shopURL string) string {
	v := shopURL
	if _, after, ok := strings.Cut(v, "://"); ok {
		v = after
	}
	host, _, _ := strings.Cut(v, "/")
	return host
}
