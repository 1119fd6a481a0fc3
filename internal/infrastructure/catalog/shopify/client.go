// Package shopify implements the product catalog against the Shopify
// Storefront GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stylelens/v1/internal/domain/catalog"
	"go.uber.org/zap"
)

// Config holds the Storefront API configuration.
type Config struct {
	// StoreDomain is the bare myshopify domain, no scheme.
	StoreDomain     string
	StorefrontToken string
	APIVersion      string
	// BaseURL is the public storefront used for product links.
	BaseURL string
	// Endpoint overrides the derived Storefront URL when set.
	Endpoint string
	Timeout  time.Duration
}

// Client implements the ProductCatalog interface against a Shopify store.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new Shopify Storefront client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-10"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.StoreDomain
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("shopify"),
	}
}

const searchQuery = `
query searchProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    edges {
      node {
        id
        title
        description
        handle
        tags
        productType
        priceRange {
          minVariantPrice {
            amount
            currencyCode
          }
        }
        featuredImage {
          url
        }
      }
    }
  }
}`

const recommendationsQuery = `
query productRecommendations($productId: ID!) {
  productRecommendations(productId: $productId) {
    id
    title
    description
    handle
    tags
    productType
    priceRange {
      minVariantPrice {
        amount
        currencyCode
      }
    }
    featuredImage {
      url
    }
  }
}`

// GraphQL wire structures.

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type productNode struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Handle      string   `json:"handle"`
	Tags        []string `json:"tags"`
	ProductType string   `json:"productType"`
	PriceRange  struct {
		MinVariantPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"minVariantPrice"`
	} `json:"priceRange"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
}

type searchResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type recommendationsResponse struct {
	Data struct {
		ProductRecommendations []productNode `json:"productRecommendations"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// SearchProducts queries the Storefront API for products matching the term.
func (c *Client) SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 3
	}

	body, err := c.call(ctx, graphqlRequest{
		Query: searchQuery,
		Variables: map[string]interface{}{
			"query": term,
			"first": limit,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, graphqlErrorf(resp.Errors)
	}

	products := make([]catalog.Product, 0, len(resp.Data.Products.Edges))
	for _, edge := range resp.Data.Products.Edges {
		product, ok := c.toProduct(edge.Node)
		if !ok {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// Recommendations fetches Shopify's own product recommendations for one
// product ID.
func (c *Client) Recommendations(ctx context.Context, productID string, limit int) ([]catalog.Product, error) {
	body, err := c.call(ctx, graphqlRequest{
		Query: recommendationsQuery,
		Variables: map[string]interface{}{
			"productId": productID,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp recommendationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, graphqlErrorf(resp.Errors)
	}

	products := make([]catalog.Product, 0, limit)
	for _, node := range resp.Data.ProductRecommendations {
		product, ok := c.toProduct(node)
		if !ok {
			continue
		}
		products = append(products, product)
		if limit > 0 && len(products) >= limit {
			break
		}
	}
	return products, nil
}

// call posts one GraphQL request to the Storefront endpoint.
func (c *Client) call(ctx context.Context, reqBody graphqlRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.Endpoint
	if url == "" {
		url = fmt.Sprintf("https://%s/api/%s/graphql.json", c.cfg.StoreDomain, c.cfg.APIVersion)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.cfg.StorefrontToken)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storefront request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront API error %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Storefront call completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_bytes", len(body)),
	)

	return body, nil
}

// toProduct maps one GraphQL node to the domain product. Nodes missing the
// id or title are dropped rather than failing the whole page.
func (c *Client) toProduct(node productNode) (catalog.Product, bool) {
	if node.ID == "" || node.Title == "" {
		c.logger.Debug("Skipping malformed product node", zap.String("handle", node.Handle))
		return catalog.Product{}, false
	}

	product := catalog.Product{
		ID:          node.ID,
		Title:       node.Title,
		Description: node.Description,
		Handle:      node.Handle,
		Tags:        node.Tags,
		Category:    strings.ToLower(node.ProductType),
		URL:         catalog.ProductURL(c.cfg.BaseURL, node.Handle),
	}
	if node.PriceRange.MinVariantPrice.Amount != "" {
		product.Price = &catalog.Price{
			Amount:   node.PriceRange.MinVariantPrice.Amount,
			Currency: node.PriceRange.MinVariantPrice.CurrencyCode,
		}
	}
	if node.FeaturedImage != nil {
		product.ImageURL = node.FeaturedImage.URL
	}
	return product, true
}

func graphqlErrorf(errs []graphqlError) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return fmt.Errorf("storefront GraphQL errors: %s", strings.Join(messages, "; "))
}
