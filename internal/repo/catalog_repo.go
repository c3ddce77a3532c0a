// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for ShopCatalog
// and ProductCustomization, the two per-shop configuration documents.
//
// Functions follow the "thin repository" approach: no business logic, only
// persistence and query composition. Missing rows surface as ErrNotFound and
// unique-key collisions on insert as ErrDuplicate.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// GetCatalog fetches the catalog of shop, or ErrNotFound.
func GetCatalog(ctx context.Context, db *gorm.DB, shop string) (*domain.ShopCatalog, error) {
	var c domain.ShopCatalog
	if err := db.WithContext(ctx).Where("shop_domain = ?", shop).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCatalog inserts c. A concurrent insert for the same shop yields
// ErrDuplicate.
func CreateCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error {
	c.Normalize()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return translate(db.WithContext(ctx).Create(c).Error)
}

// UpsertCatalog inserts c or overwrites the stored lists of the same shop,
// always refreshing updated_at.
func UpsertCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error {
	c.Normalize()
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_domain"}},
		DoUpdates: clause.AssignmentColumns([]string{"text_options", "placements", "fonts", "updated_at"}),
	}).Create(c).Error
}

// GetCustomization fetches the toggle of (shop, productID), or ErrNotFound.
func GetCustomization(ctx context.Context, db *gorm.DB, shop, productID string) (*domain.ProductCustomization, error) {
	var pc domain.ProductCustomization
	err := db.WithContext(ctx).
		Where("shop_domain = ? AND product_id = ?", shop, productID).
		First(&pc).Error
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// UpsertCustomization inserts pc or overwrites enabled/settings of the
// existing row.
func UpsertCustomization(ctx context.Context, db *gorm.DB, pc *domain.ProductCustomization) error {
	now := time.Now().UTC()
	if pc.CreatedAt.IsZero() {
		pc.CreatedAt = now
	}
	pc.UpdatedAt = now
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_domain"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "settings", "updated_at"}),
	}).Create(pc).Error
}
