package shopify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectionShop serves count.json and paged listings for resource holding n items.
// Each item carries its global position in "seq".
func collectionShop(t *testing.T, resource string, n int, failPage int) *fakeShop {
	return newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		switch r.URL.Path {
		case "/admin/" + resource + "/count.json":
			writeJSON(w, http.StatusOK, map[string]int{"count": n})
		case "/admin/" + resource + ".json":
			assert.Equal(t, strconv.Itoa(PageSize), r.URL.Query().Get("limit"))
			page, err := strconv.Atoi(r.URL.Query().Get("page"))
			assert.NoError(t, err)
			if page == failPage {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"errors": "boom"})
				return
			}
			items := []map[string]any{}
			for i := (page - 1) * PageSize; i < page*PageSize && i < n; i++ {
				items = append(items, map[string]any{"seq": i})
			}
			writeJSON(w, http.StatusOK, map[string]any{resource: items})
		default:
			http.NotFound(w, r)
		}
	})
}

func TestFetchCollection_PageCountAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 249, 250, 251, 500, 1001} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			shop := collectionShop(t, ResourceProducts, n, 0)

			got, err := clientFor(privateSettings(shop.srv.URL)).FetchProducts(context.Background())
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, n)

			wantPages := (n + PageSize - 1) / PageSize
			assert.Equal(t, wantPages, shop.Count(http.MethodGet, "/admin/products.json"))
			assert.Equal(t, 1, shop.Count(http.MethodGet, "/admin/products/count.json"))

			for i, item := range got {
				assert.Equal(t, float64(i), item["seq"])
			}
		})
	}
}

func TestFetchCollection_ZeroCountRequestsNoPages(t *testing.T) {
	shop := collectionShop(t, ResourceOrders, 0, 0)

	got, err := clientFor(publicSettings(shop.srv.URL)).FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, shop.Requests(), 1)
}

func TestFetchCollection_PagesAreRequestedInOrder(t *testing.T) {
	shop := collectionShop(t, ResourceCustomers, 3*PageSize, 0)

	_, err := clientFor(publicSettings(shop.srv.URL)).FetchCustomers(context.Background())
	require.NoError(t, err)

	var pages []string
	for _, r := range shop.Requests() {
		if r.Path == "/admin/customers.json" {
			pages = append(pages, r.RawQuery)
		}
	}
	assert.Equal(t, []string{"limit=250&page=1", "limit=250&page=2", "limit=250&page=3"}, pages)
}

func TestFetchCollection_PageFailureAbortsWithoutPartialResult(t *testing.T) {
	shop := collectionShop(t, ResourceCountries, 3*PageSize, 2)

	got, err := clientFor(publicSettings(shop.srv.URL)).FetchCountries(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsRemoteAPIError(err))
	assert.Equal(t, http.StatusInternalServerError, RemoteStatus(err))
	// Page 3 is never requested.
	assert.Equal(t, 2, shop.Count(http.MethodGet, "/admin/countries.json"))
}

func TestFetchCollection_CountFailurePropagates(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := clientFor(publicSettings(shop.srv.URL)).FetchCollection(context.Background(), ResourceProducts)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, RemoteStatus(err))
}

func TestFetchCollection_MissingPluralKeyIsAnError(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if strings.HasSuffix(r.URL.Path, "count.json") {
			writeJSON(w, http.StatusOK, map[string]int{"count": 3})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
	})

	_, err := clientFor(publicSettings(shop.srv.URL)).FetchCollection(context.Background(), ResourceProducts)
	require.Error(t, err)
	assert.False(t, IsRemoteAPIError(err))
}

func TestFetchCollection_IgnoresSiblingKeys(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if strings.HasSuffix(r.URL.Path, "count.json") {
			writeJSON(w, http.StatusOK, map[string]int{"count": 2})
			return
		}
		_, _ = w.Write([]byte(`{"products":[{"id":1},{"id":2}],"meta":{"x":1},"next":null}`))
	})

	items, err := clientFor(publicSettings(shop.srv.URL)).FetchCollection(context.Background(), ResourceProducts)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, items[1]["id"])
}

func TestFetchCollection_NonArrayPluralKeyIsAnError(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if strings.HasSuffix(r.URL.Path, "count.json") {
			writeJSON(w, http.StatusOK, map[string]int{"count": 1})
			return
		}
		_, _ = w.Write([]byte(`{"products":{"id":1}}`))
	})

	_, err := clientFor(publicSettings(shop.srv.URL)).FetchCollection(context.Background(), ResourceProducts)
	require.Error(t, err)
	assert.False(t, IsRemoteAPIError(err))
}

func TestFetchCollection_RejectsBadResourceName(t *testing.T) {
	_, err := clientFor(publicSettings("s.myshopify.com")).FetchCollection(context.Background(), "products/../orders")
	require.Error(t, err)
}

func TestFetchCustomerByID(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if r.URL.Path == "/admin/customers/42.json" {
			writeJSON(w, http.StatusOK, map[string]any{"customer": map[string]any{"id": 42, "email": "a@b.c"}})
			return
		}
		http.NotFound(w, r)
	})
	c := clientFor(publicSettings(shop.srv.URL))

	got, ok := c.FetchCustomerByID(context.Background(), "42")
	require.True(t, ok)
	assert.Equal(t, "a@b.c", got["email"])

	got, ok = c.FetchCustomerByID(context.Background(), "7")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFetchCustomerByID_EscapesIDOnce(t *testing.T) {
	var escaped string
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		escaped = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, map[string]any{"customer": map[string]any{"id": 1}})
	})

	_, ok := clientFor(publicSettings(shop.srv.URL)).FetchCustomerByID(context.Background(), "a%b c")
	require.True(t, ok)
	assert.Equal(t, "/admin/customers/a%25b%20c.json", escaped)
}

func TestBestEffortLookupsSwallowNetworkErrors(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {})
	addr := shop.srv.URL
	shop.srv.Close()
	c := clientFor(publicSettings(addr))

	_, ok := c.FetchCustomerByID(context.Background(), "1")
	assert.False(t, ok)
	_, ok = c.FetchCollectionsByProductID(context.Background(), "1")
	assert.False(t, ok)
}

func TestFetchCollectionsByProductID(t *testing.T) {
	shop := newFakeShop(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		switch r.URL.Query().Get("product_id") {
		case "10":
			writeJSON(w, http.StatusOK, map[string]any{"custom_collections": []map[string]any{{"id": 1}, {"id": 2}}})
		case "11":
			writeJSON(w, http.StatusOK, map[string]any{"custom_collections": []any{}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{})
		}
	})
	c := clientFor(privateSettings(shop.srv.URL))

	got, ok := c.FetchCollectionsByProductID(context.Background(), "10")
	require.True(t, ok)
	assert.Len(t, got, 2)

	got, ok = c.FetchCollectionsByProductID(context.Background(), "11")
	require.True(t, ok)
	assert.Empty(t, got)

	_, ok = c.FetchCollectionsByProductID(context.Background(), "12")
	assert.False(t, ok)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(-1))
	assert.Equal(t, 0, pageCount(0))
	assert.Equal(t, 1, pageCount(250))
	assert.Equal(t, 2, pageCount(251))
}
