package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		StoreDomain:     "demo-store.myshopify.com",
		StorefrontToken: "test-token",
		BaseURL:         "https://demo-store.myshopify.com",
		Endpoint:        srv.URL,
	}, zap.NewNop())

	return client, srv
}

const searchReplyJSON = `{
  "data": {
    "products": {
      "edges": [
        {
          "node": {
            "id": "gid://shopify/Product/1",
            "title": "Black Leather Jacket",
            "description": "Premium black leather jacket.",
            "handle": "black-leather-jacket",
            "tags": ["outerwear", "black"],
            "productType": "Outerwear",
            "priceRange": {"minVariantPrice": {"amount": "299.99", "currencyCode": "USD"}},
            "featuredImage": {"url": "https://cdn.shopify.com/img.jpg"}
          }
        },
        {
          "node": {
            "id": "",
            "title": "Malformed Node Without ID",
            "handle": "broken"
          }
        }
      ]
    }
  }
}`

func TestSearchProductsMapsNodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Storefront-Access-Token"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		vars := req["variables"].(map[string]interface{})
		assert.Equal(t, "black jacket", vars["query"])
		assert.Equal(t, float64(3), vars["first"])

		w.Write([]byte(searchReplyJSON))
	})

	products, err := client.SearchProducts(context.Background(), "black jacket", 3)
	require.NoError(t, err)

	// The malformed node is skipped, not fatal.
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "gid://shopify/Product/1", p.ID)
	assert.Equal(t, "Black Leather Jacket", p.Title)
	assert.Equal(t, "outerwear", p.Category)
	assert.Equal(t, "https://demo-store.myshopify.com/products/black-leather-jacket", p.URL)
	require.NotNil(t, p.Price)
	assert.Equal(t, "299.99", p.Price.Amount)
	assert.Equal(t, "USD", p.Price.Currency)
	assert.Equal(t, "https://cdn.shopify.com/img.jpg", p.ImageURL)
}

func TestSearchProductsGraphQLErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"field does not exist"}]}`))
	})

	_, err := client.SearchProducts(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field does not exist")
}

func TestSearchProductsHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":"invalid token"}`))
	})

	_, err := client.SearchProducts(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRecommendationsMapsAndLimits(t *testing.T) {
	reply := `{
  "data": {
    "productRecommendations": [
      {"id": "gid://shopify/Product/2", "title": "White T-Shirt", "handle": "white-t-shirt"},
      {"id": "gid://shopify/Product/3", "title": "Blue Jeans", "handle": "blue-jeans"},
      {"id": "gid://shopify/Product/4", "title": "Black Dress", "handle": "black-dress"}
    ]
  }
}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reply))
	})

	products, err := client.Recommendations(context.Background(), "gid://shopify/Product/1", 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "White T-Shirt", products[0].Title)
	assert.Equal(t, "Blue Jeans", products[1].Title)
}
