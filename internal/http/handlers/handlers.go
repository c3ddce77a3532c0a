// Package handlers exposes the storefront personalization API.
//
// Handlers are transport-thin: they resolve the shop, validate input, call
// application services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/http/middleware"
	"github.com/tbourn/go-personalizer-backend/internal/personalize"
	"github.com/tbourn/go-personalizer-backend/internal/sysutil"
)

//
// Service contracts (context-aware)
//

// CatalogService resolves, replaces and prices against shop catalogs.
type CatalogService interface {
	Resolve(ctx context.Context, shop string) (*domain.ShopCatalog, error)
	Replace(ctx context.Context, shop string, patch domain.CatalogPatch) (*domain.ShopCatalog, error)
	Quote(ctx context.Context, shop string, props domain.Properties) (*personalize.Quote, error)
}

// CustomizationService reads and writes per-product toggles.
type CustomizationService interface {
	Get(ctx context.Context, shop, productID string) (*domain.ProductCustomization, error)
	Put(ctx context.Context, shop, productID string, enabled bool, settings map[string]any) (*domain.ProductCustomization, error)
}

// IntakeService queries order intake records.
type IntakeService interface {
	Get(ctx context.Context, shop, id string) (*domain.OrderIntake, error)
	Query(ctx context.Context, shop, status string, limit int) ([]domain.OrderIntake, error)
	// Stats returns the count and newest update of the records Query scans.
	Stats(ctx context.Context, shop, status string) (int64, *time.Time, error)
}

// ProductionService derives production records of completed intakes.
type ProductionService interface {
	Get(ctx context.Context, shop, id string) (*domain.ProductionRecord, error)
}

// WebhookService processes verified order notifications.
type WebhookService interface {
	Deliver(ctx context.Context, shop, deliveryID string, raw []byte) (*domain.OrderIntake, bool, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	catalogs   CatalogService
	toggles    CustomizationService
	intakes    IntakeService
	production ProductionService
	webhooks   WebhookService
}

// Services bundles the dependencies of New.
type Services struct {
	Catalogs       CatalogService
	Customizations CustomizationService
	Intakes        IntakeService
	Production     ProductionService
	Webhooks       WebhookService
}

// New constructs Handlers bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{
		catalogs:   s.Catalogs,
		toggles:    s.Customizations,
		intakes:    s.Intakes,
		production: s.Production,
		webhooks:   s.Webhooks,
	}
}

// shopDomain resolves the shop of an API request: the `shop` query parameter
// first, then the X-Shop-Domain header.
func shopDomain(c *gin.Context) string {
	return sysutil.ShopDomain(c.Query("shop"), c.GetHeader(middleware.HeaderShopDomain))
}
