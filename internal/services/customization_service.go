// Package services – CustomizationService
//
// CRUD for per-product customization toggles. Reads never fail with "not
// found": an unconfigured product reads as disabled with empty settings.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CustomizationService reads and writes product customization toggles.
type CustomizationService struct {
	DB *gorm.DB
}

func toggleArgs(shop, productID string) (string, string, error) {
	shop, productID = strings.TrimSpace(shop), strings.TrimSpace(productID)
	if shop == "" {
		return "", "", ErrShopRequired
	}
	if productID == "" {
		return "", "", ErrProductRequired
	}
	return shop, productID, nil
}

// Get returns the toggle of (shop, productID) or the disabled default.
func (s *CustomizationService) Get(ctx context.Context, shop, productID string) (*domain.ProductCustomization, error) {
	tr := otel.Tracer("services/CustomizationService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("product.id", productID),
		),
	)
	defer span.End()

	shop, productID, err := toggleArgs(shop, productID)
	if err != nil {
		return nil, err
	}

	pc, err := repo.GetCustomization(ctx, s.DB, shop, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return domain.DisabledCustomization(shop, productID), nil
	}
	if err != nil {
		return nil, err
	}
	if pc.Settings == nil {
		pc.Settings = datatypes.JSONMap{}
	}
	return pc, nil
}

// Put upserts the toggle of (shop, productID) and returns the stored row.
func (s *CustomizationService) Put(ctx context.Context, shop, productID string, enabled bool, settings map[string]any) (*domain.ProductCustomization, error) {
	tr := otel.Tracer("services/CustomizationService")
	ctx, span := tr.Start(ctx, "Put",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("product.id", productID),
			attribute.Bool("enabled", enabled),
		),
	)
	defer span.End()

	shop, productID, err := toggleArgs(shop, productID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = map[string]any{}
	}

	pc := &domain.ProductCustomization{
		ShopDomain: shop,
		ProductID:  productID,
		Enabled:    enabled,
		Settings:   datatypes.JSONMap(settings),
	}
	if err := repo.UpsertCustomization(ctx, s.DB, pc); err != nil {
		return nil, err
	}
	return repo.GetCustomization(ctx, s.DB, shop, productID)
}
