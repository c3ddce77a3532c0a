// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, webhook verification, and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/docs"
	"github.com/tbourn/go-personalizer-backend/internal/config"
	"github.com/tbourn/go-personalizer-backend/internal/http/handlers"
	"github.com/tbourn/go-personalizer-backend/internal/http/middleware"
	"github.com/tbourn/go-personalizer-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the webhook service so the caller can schedule delivery
// purges against the same configuration.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Compression
//  7. Metrics
//  8. CORS and Security headers
//
// The rate limiter is attached per group: webhook deliveries must pass
// signature and delivery-id checks first so replays can bypass it.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) *services.WebhookService {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression; /metrics is negotiated by promhttp itself
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (safe defaults: allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderShopDomain}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:     cfg.Security.EnableHSTS,
		HSTSMaxAge:     cfg.Security.HSTSMaxAge,
		EnablePolicy:   true,
		FrameAncestors: cfg.Security.FrameAncestors,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.WidgetDir != "" {
		r.Static("/widget", cfg.WidgetDir)
	}

	// Dependency injection: services ← db
	catalogs := services.NewCatalogService(db)
	intakes := services.NewIntakeService(db, cfg.OrdersDefaultLimit, cfg.OrdersMaxLimit)
	orders := &services.OrderService{Catalogs: catalogs, Intakes: intakes}
	webhooks := &services.WebhookService{DB: db, Orders: orders, TTL: cfg.IdempotencyTTL}

	h := handlers.New(handlers.Services{
		Catalogs:       catalogs,
		Customizations: &services.CustomizationService{DB: db},
		Intakes:        intakes,
		Production:     &services.ProductionService{Catalogs: catalogs, Intakes: intakes},
		Webhooks:       webhooks,
	})

	// Token-bucket rate limiter per shop/IP, shared by both groups
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByShopOrIP())

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	api.Use(rl.Handler())
	{
		// Catalog
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.PutSettings)
		api.POST("/quote", h.Quote)

		// Product toggles
		api.GET("/products/:productId/customization", h.GetCustomization)
		api.PUT("/products/:productId/customization", h.PutCustomization)

		// Orders
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.GET("/orders/:id/production", h.GetProduction)
	}

	// Platform webhooks: signature → delivery id → rate limit
	wh := r.Group("/webhooks")
	wh.Use(
		middleware.VerifyWebhook(cfg.WebhookSecret),
		middleware.WebhookIdempotency(middleware.IdempotencyOptions{},
			func(ctx context.Context, shop, key string, _ time.Time) (bool, error) {
				return webhooks.Seen(ctx, shop, services.TopicOrdersCreate, key)
			},
		),
		rl.Handler(),
	)
	wh.POST("/orders/create", h.OrderCreated)

	return webhooks
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
