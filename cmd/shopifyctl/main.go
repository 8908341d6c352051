package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"shopbridge/internal/settings"
	"shopbridge/pkg/config"
	"shopbridge/pkg/shopify"
)

const usage = `usage: shopifyctl [-v] <command>

commands:
  products | orders | customers | countries   fetch the whole collection
  customer <id>                               look up one customer
  product-collections <id>                    custom collections of a product
  webhooks list                               list subscriptions
  webhooks install                            subscribe SHOPIFY_WEBHOOK_ADDRESS to every topic
  webhooks reset                              delete every subscription, then install
`

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log.SetLevel(log.WarnLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Load()
	client := shopify.NewClient(settings.EnvProvider{}, &http.Client{Timeout: cfg.Shopify.HTTPTimeout})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, client, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printJSON(out)
}

type usageError string

func (e usageError) Error() string { return string(e) + "\n\n" + usage }

func run(ctx context.Context, c shopify.Client, args []string) (any, error) {
	if len(args) == 0 {
		return nil, usageError("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch {
	case shopify.IsResource(cmd):
		items, err := c.FetchCollection(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return map[string]any{cmd: items, "count": len(items)}, nil

	case cmd == "customer":
		if len(rest) != 1 {
			return nil, usageError("customer needs an id")
		}
		customer, ok := c.FetchCustomerByID(ctx, rest[0])
		if !ok {
			return nil, fmt.Errorf("customer %s not found", rest[0])
		}
		return customer, nil

	case cmd == "product-collections":
		if len(rest) != 1 {
			return nil, usageError("product-collections needs a product id")
		}
		collections, ok := c.FetchCollectionsByProductID(ctx, rest[0])
		if !ok {
			return nil, fmt.Errorf("collections for product %s not available", rest[0])
		}
		return collections, nil

	case cmd == "webhooks":
		return runWebhooks(ctx, c, rest)
	}
	return nil, usageError("unknown command " + cmd)
}

func runWebhooks(ctx context.Context, c shopify.Client, args []string) (any, error) {
	if len(args) != 1 {
		return nil, usageError("webhooks needs list, install or reset")
	}
	switch args[0] {
	case "list":
		return c.ListWebhooks(ctx)
	case "install":
		return c.CreateAllWebhooks(ctx)
	case "reset":
		n, err := c.DeleteAllWebhooks(ctx)
		if err != nil {
			return nil, fmt.Errorf("deleted %d before failing: %w", n, err)
		}
		return c.CreateAllWebhooks(ctx)
	}
	return nil, usageError("unknown webhooks command " + args[0])
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("encode output")
	}
	fmt.Println(string(b))
}
