package domain

import "time"

// WebhookDelivery records a processed webhook delivery, keyed by
// (shop_domain, topic, key) where key is the upstream webhook id. Redelivered
// notifications replay the stored outcome instead of re-running the pipeline.
//
// IntakeID is empty when the delivery was acknowledged without creating an
// intake record (no customizations in the order).
type WebhookDelivery struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	ShopDomain string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_delivery_shop_topic_key,priority:1"`
	Topic      string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_delivery_shop_topic_key,priority:2"`
	Key        string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_delivery_shop_topic_key,priority:3"`
	IntakeID   string    `gorm:"type:varchar(36);not null;default:''"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (WebhookDelivery) TableName() string { return "webhook_deliveries" }
