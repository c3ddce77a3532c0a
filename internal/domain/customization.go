package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ProductCustomization toggles the personalization widget for one product of
// one shop and carries an arbitrary per-product settings payload.
// (ShopDomain, ProductID) is the composite primary key.
type ProductCustomization struct {
	ShopDomain string            `json:"shop"      gorm:"type:varchar(255);primaryKey"`
	ProductID  string            `json:"productId" gorm:"type:varchar(64);primaryKey"`
	Enabled    bool              `json:"enabled"   gorm:"not null;default:false"`
	Settings   datatypes.JSONMap `json:"settings"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// TableName returns the database table name for ProductCustomization.
func (ProductCustomization) TableName() string { return "product_customizations" }

// DisabledCustomization is what a read returns for a product never configured.
func DisabledCustomization(shop, productID string) *ProductCustomization {
	return &ProductCustomization{
		ShopDomain: shop,
		ProductID:  productID,
		Enabled:    false,
		Settings:   datatypes.JSONMap{},
	}
}
