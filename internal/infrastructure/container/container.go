// Package container provides dependency injection using Uber FX.
package container

import (
	"context"
	"net/http"
	"time"

	"github.com/stylelens/v1/internal/application/stylist"
	"github.com/stylelens/v1/internal/infrastructure/ai/gemini"
	memorycatalog "github.com/stylelens/v1/internal/infrastructure/catalog/memory"
	"github.com/stylelens/v1/internal/infrastructure/catalog/shopify"
	"github.com/stylelens/v1/internal/infrastructure/config"
	"github.com/stylelens/v1/internal/infrastructure/http/server"
	memorycache "github.com/stylelens/v1/internal/infrastructure/persistence/memory"
	rediscache "github.com/stylelens/v1/internal/infrastructure/persistence/redis"
	"github.com/stylelens/v1/internal/infrastructure/social"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/internal/ports/outbound"
	"github.com/stylelens/v1/pkg/healthcheck"
	"github.com/stylelens/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CacheModule,
	CatalogModule,
	VisionModule,
	SocialModule,
	ServiceModule,
	HealthModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// CacheModule provides the analysis cache. Redis serves when a host is
// configured and reachable; otherwise the in-memory cache takes over so a
// missing Redis never blocks startup.
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Host != "" {
			redisCache, err := rediscache.NewCacheRepository(cfg.Redis, log)
			if err == nil {
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return redisCache.Close()
					},
				})
				return redisCache
			}
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		} else {
			log.Info("Using in-memory cache")
		}

		memCache := memorycache.NewCacheRepository()
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				memCache.Close()
				return nil
			},
		})
		return memCache
	},
)

// CatalogModule provides the product catalog. The Shopify Storefront serves
// when configured and enabled; the embedded fixture otherwise.
var CatalogModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.ProductCatalog, error) {
		useShopify := cfg.Catalog.Provider == config.CatalogProviderShopify ||
			(cfg.Features.EnableShopify && cfg.ShopifyConfigured())

		if useShopify {
			if !cfg.ShopifyConfigured() {
				log.Warn("Shopify catalog selected but not configured, using fixture catalog")
			} else {
				log.Info("Using Shopify product catalog",
					zap.String("store", cfg.NormalizedStoreDomain()),
				)
				return shopify.NewClient(shopify.Config{
					StoreDomain:     cfg.NormalizedStoreDomain(),
					StorefrontToken: cfg.Shopify.StorefrontToken,
					APIVersion:      cfg.Shopify.APIVersion,
					BaseURL:         cfg.Catalog.BaseURL,
				}, log), nil
			}
		}

		return memorycatalog.NewCatalog(cfg.Catalog.BaseURL, log)
	},
)

// VisionModule provides the vision model client. A missing API key disables
// image analysis instead of failing startup.
var VisionModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.VisionService {
		if !cfg.VisionConfigured() {
			log.Warn("Vision model not configured, image analysis disabled")
			return nil
		}
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.AI.GeminiKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}, log)
	},
)

// SocialModule provides the style-hint source.
var SocialModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.StyleSource {
		if !cfg.Features.EnableSocial || !cfg.Social.Enabled {
			log.Info("Social style hints disabled")
			return nil
		}
		return social.NewSimulatedSource(log)
	},
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	func(
		vision outbound.VisionService,
		productCatalog outbound.ProductCatalog,
		cache outbound.CacheRepository,
		styleSource outbound.StyleSource,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.StylistService {
		cacheTTL := time.Duration(0)
		if cfg.AI.EnableCache {
			cacheTTL = cfg.AI.CacheTTL
		}
		return stylist.NewStylistService(vision, productCatalog, cache, styleSource, stylist.Options{
			PerTermLimit: cfg.Catalog.SearchLimit,
			MaxTerms:     cfg.Catalog.MaxTermCount,
			CacheTTL:     cacheTTL,
		}, log)
	},
)

// HealthModule provides the readiness checker. The catalog is critical; the
// cache and vision model only degrade the report.
var HealthModule = fx.Provide(
	func(
		cfg *config.Config,
		productCatalog outbound.ProductCatalog,
		cache outbound.CacheRepository,
		vision outbound.VisionService,
	) *healthcheck.Checker {
		checker := healthcheck.New(5 * time.Second)

		checker.Register("catalog", func(ctx context.Context) error {
			_, err := productCatalog.SearchProducts(ctx, "", 1)
			return err
		})

		checker.RegisterOptional("cache", func(ctx context.Context) error {
			_, err := cache.Exists(ctx, "healthcheck")
			return err
		})

		checker.RegisterOptional("vision", func(ctx context.Context) error {
			if vision == nil {
				return errVisionDisabled
			}
			return nil
		})

		return checker
	},
)

var errVisionDisabled = &disabledError{"vision model not configured"}

type disabledError struct{ msg string }

func (e *disabledError) Error() string { return e.msg }

// HTTPModule provides the HTTP server.
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks.
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server on application start and
// shuts it down gracefully on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
