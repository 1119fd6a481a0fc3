// Package main provides the catalog seed tool. It pushes the embedded demo
// products, plus optionally a batch of generated filler products, into a
// Shopify store through the Admin API so the Storefront catalog has
// something to match against.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stylelens/v1/internal/domain/catalog"
	memorycatalog "github.com/stylelens/v1/internal/infrastructure/catalog/memory"
	"github.com/stylelens/v1/internal/infrastructure/config"
	"github.com/stylelens/v1/pkg/logger"
	"go.uber.org/zap"
)

var garmentTypes = []string{"outerwear", "top", "bottom", "shoes", "dress", "accessories"}

var garmentNames = map[string][]string{
	"outerwear":   {"Jacket", "Coat", "Blazer", "Parka"},
	"top":         {"T-Shirt", "Shirt", "Sweater", "Hoodie"},
	"bottom":      {"Jeans", "Chinos", "Shorts", "Skirt"},
	"shoes":       {"Sneakers", "Boots", "Loafers", "Heels"},
	"dress":       {"Dress", "Midi Dress", "Slip Dress"},
	"accessories": {"Scarf", "Belt", "Cap", "Tote Bag"},
}

func main() {
	var (
		extras = flag.Int("extras", 0, "number of generated filler products to add")
		dryRun = flag.Bool("dry-run", false, "print products without uploading")
	)
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	fixture, err := memorycatalog.NewCatalog("", log)
	if err != nil {
		log.Fatal("Failed to load fixture catalog", zap.Error(err))
	}

	products := fixture.Products()
	products = append(products, generateExtras(*extras)...)

	if *dryRun {
		for _, p := range products {
			fmt.Printf("%-28s %-12s %s %s\n", p.Title, p.Category, p.Price.Amount, p.Price.Currency)
		}
		return
	}

	if cfg.Shopify.StoreURL == "" || cfg.Shopify.AdminToken == "" {
		log.Fatal("Shopify store URL and admin token are required for upload")
	}

	seeder := &seeder{
		domain:     cfg.NormalizedStoreDomain(),
		adminToken: cfg.Shopify.AdminToken,
		apiVersion: cfg.Shopify.APIVersion,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     log,
	}

	ctx := context.Background()
	created := 0
	for _, product := range products {
		if err := seeder.create(ctx, product); err != nil {
			log.Error("Failed to create product",
				zap.String("title", product.Title),
				zap.Error(err),
			)
			continue
		}
		created++
		// Admin API rate limit is 2 requests/second on standard plans.
		time.Sleep(600 * time.Millisecond)
	}

	log.Info("Seeding finished",
		zap.Int("created", created),
		zap.Int("total", len(products)),
	)
}

// generateExtras produces filler products so searches beyond the demo set
// still return results.
func generateExtras(count int) []catalog.Product {
	faker := gofakeit.New(0)

	extras := make([]catalog.Product, 0, count)
	for i := 0; i < count; i++ {
		category := garmentTypes[faker.Number(0, len(garmentTypes)-1)]
		names := garmentNames[category]
		name := names[faker.Number(0, len(names)-1)]
		color := faker.Color()
		title := fmt.Sprintf("%s %s", color, name)

		handle := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
		extras = append(extras, catalog.Product{
			ID:          fmt.Sprintf("extra-%d", i+1),
			Title:       title,
			Description: faker.Sentence(12),
			Handle:      handle,
			Tags:        []string{category, strings.ToLower(color), strings.ToLower(name)},
			Category:    category,
			Price: &catalog.Price{
				Amount:   fmt.Sprintf("%.2f", faker.Price(20, 400)),
				Currency: "USD",
			},
		})
	}
	return extras
}

type seeder struct {
	domain     string
	adminToken string
	apiVersion string
	client     *http.Client
	logger     *zap.Logger
}

// adminProduct is the Admin API product payload.
type adminProduct struct {
	Product struct {
		Title       string `json:"title"`
		BodyHTML    string `json:"body_html"`
		Handle      string `json:"handle,omitempty"`
		ProductType string `json:"product_type"`
		Tags        string `json:"tags"`
		Variants    []struct {
			Price string `json:"price"`
		} `json:"variants"`
	} `json:"product"`
}

func (s *seeder) create(ctx context.Context, product catalog.Product) error {
	var payload adminProduct
	payload.Product.Title = product.Title
	payload.Product.BodyHTML = "<p>" + product.Description + "</p>"
	payload.Product.Handle = product.Handle
	payload.Product.ProductType = product.Category
	payload.Product.Tags = strings.Join(product.Tags, ", ")
	if product.Price != nil {
		payload.Product.Variants = append(payload.Product.Variants, struct {
			Price string `json:"price"`
		}{Price: product.Price.Amount})
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/products.json", s.domain, s.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.adminToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("admin API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("admin API error %d: %s", resp.StatusCode, string(body))
	}

	s.logger.Info("Product created", zap.String("title", product.Title))
	return nil
}
