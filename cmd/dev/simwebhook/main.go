package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"shopbridge/internal/webhook"
	"shopbridge/pkg/config"
)

func main() {
	var (
		url       = flag.String("url", "", "webhook endpoint url (defaults to http://localhost<HTTP_ADDR>/v1/webhooks/shopify)")
		topic     = flag.String("topic", "orders/paid", "shopify topic header value")
		shop      = flag.String("shop", "example.myshopify.com", "X-Shopify-Shop-Domain")
		secret    = flag.String("secret", "", "shared secret (defaults to SHOPIFY_PASSWORD)")
		payload   = flag.String("payload", "", "path to json payload file (defaults to {})")
		webhookID = flag.String("id", "", "optional webhook id header value")
	)
	flag.Parse()

	cfg := config.Load()
	if *url == "" {
		*url = localURL(cfg.HTTPAddr)
	}
	if *secret == "" {
		*secret = cfg.Shopify.Password
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "missing -secret (or SHOPIFY_PASSWORD in env/.env)")
		os.Exit(2)
	}

	b := []byte(`{}`)
	if *payload != "" {
		var err error
		if b, err = os.ReadFile(*payload); err != nil {
			fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
			os.Exit(2)
		}
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(b))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(2)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderTopic, *topic)
	req.Header.Set(webhook.HeaderShopDomain, *shop)
	req.Header.Set(webhook.HeaderHMAC, webhook.Sign(b, *secret))
	if *webhookID != "" {
		req.Header.Set(webhook.HeaderWebhookID, *webhookID)
	}

	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d\n%s\n", resp.StatusCode, string(body))
}

// localURL maps a bind address such as ":8081" or "0.0.0.0:8081" to a local endpoint.
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
