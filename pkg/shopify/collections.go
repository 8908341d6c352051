package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// PageSize is the fixed page size used for every collection fetch.
const PageSize = 250

const (
	ResourceProducts  = "products"
	ResourceOrders    = "orders"
	ResourceCustomers = "customers"
	ResourceCountries = "countries"
)

// Resources lists the collections the bulk fetcher knows about.
var Resources = []string{ResourceProducts, ResourceOrders, ResourceCustomers, ResourceCountries}

// IsResource reports whether name is one of Resources.
func IsResource(name string) bool {
	for _, r := range Resources {
		if r == name {
			return true
		}
	}
	return false
}

type countResponse struct {
	Count int `json:"count"`
}

// CollectionPageCount asks the count endpoint for the total and returns ceil(count/PageSize).
func (c Client) CollectionPageCount(ctx context.Context, resource string) (int, error) {
	resource, err := cleanResource(resource)
	if err != nil {
		return 0, err
	}
	var resp countResponse
	if err := c.Get(ctx, "/admin/"+resource+"/count.json", &resp); err != nil {
		return 0, err
	}
	return pageCount(resp.Count), nil
}

// FetchCollection reads every page of resource in order and returns the concatenation.
// The first failing page aborts the fetch and nothing fetched so far is returned.
func (c Client) FetchCollection(ctx context.Context, resource string) ([]Object, error) {
	resource, err := cleanResource(resource)
	if err != nil {
		return nil, err
	}
	pages, err := c.CollectionPageCount(ctx, resource)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{"resource": resource, "pages": pages})
	out := make([]Object, 0)
	for page := 1; page <= pages; page++ {
		path := fmt.Sprintf("/admin/%s.json?limit=%d&page=%d", resource, PageSize, page)

		// Only the plural key is decoded; sibling keys are ignored.
		var resp map[string]json.RawMessage
		if err := c.Get(ctx, path, &resp); err != nil {
			logger.WithField("page", page).WithError(err).Warn("shopify: collection page failed")
			return nil, err
		}
		raw, ok := resp[resource]
		if !ok {
			return nil, decodeError(nil, path, nil)
		}
		var items []Object
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, decodeError(err, path, raw)
		}
		out = append(out, items...)
		logger.WithFields(log.Fields{"page": page, "items": len(items)}).Debug("shopify: collection page fetched")
	}
	return out, nil
}

func (c Client) FetchProducts(ctx context.Context) ([]Object, error) {
	return c.FetchCollection(ctx, ResourceProducts)
}

func (c Client) FetchOrders(ctx context.Context) ([]Object, error) {
	return c.FetchCollection(ctx, ResourceOrders)
}

func (c Client) FetchCustomers(ctx context.Context) ([]Object, error) {
	return c.FetchCollection(ctx, ResourceCustomers)
}

func (c Client) FetchCountries(ctx context.Context) ([]Object, error) {
	return c.FetchCollection(ctx, ResourceCountries)
}

// FetchCustomerByID is best-effort: any failure, network errors included, yields ok=false.
func (c Client) FetchCustomerByID(ctx context.Context, id string) (customer Object, ok bool) {
	var resp struct {
		Customer Object `json:"customer"`
	}
	path := "/admin/customers/" + url.PathEscape(strings.TrimSpace(id)) + ".json"
	if err := c.Get(ctx, path, &resp); err != nil {
		log.WithError(err).WithField("customer_id", id).Debug("shopify: customer lookup failed")
		return nil, false
	}
	if resp.Customer == nil {
		return nil, false
	}
	return resp.Customer, true
}

// FetchCollectionsByProductID returns the custom collections a product belongs to.
// Best-effort like FetchCustomerByID.
func (c Client) FetchCollectionsByProductID(ctx context.Context, productID string) (collections []Object, ok bool) {
	var resp struct {
		CustomCollections *[]Object `json:"custom_collections"`
	}
	path := "/admin/custom_collections.json?product_id=" + url.QueryEscape(strings.TrimSpace(productID))
	if err := c.Get(ctx, path, &resp); err != nil {
		log.WithError(err).WithField("product_id", productID).Debug("shopify: collections lookup failed")
		return nil, false
	}
	if resp.CustomCollections == nil {
		return nil, false
	}
	return *resp.CustomCollections, true
}

func pageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

func cleanResource(resource string) (string, error) {
	r := strings.Trim(strings.TrimSpace(resource), "/")
	if r == "" || strings.ContainsAny(r, "/?#") {
		return "", badInput(fmt.Sprintf("shopify: invalid resource name %q", resource))
	}
	return r, nil
}
