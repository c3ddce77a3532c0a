package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestWebhookDelivery_Migration_UniqueKey_AndInsert(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&WebhookDelivery{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	now := time.Now().UTC()
	rec := &WebhookDelivery{
		ID:         "d-1",
		ShopDomain: "s.myshopify.com",
		Topic:      "orders/create",
		Key:        "wh-1",
		IntakeID:   "i-1",
		Status:     200,
		ExpiresAt:  now.Add(time.Hour),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert valid: %v", err)
	}

	var got WebhookDelivery
	if err := db.First(&got, "id = ?", "d-1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.ShopDomain != "s.myshopify.com" || got.Topic != "orders/create" || got.Key != "wh-1" || got.IntakeID != "i-1" || got.Status != 200 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt should be auto-populated")
	}

	// Same key under another topic is a different delivery.
	other := *rec
	other.ID, other.Topic = "d-2", "orders/updated"
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("insert other topic: %v", err)
	}

	dup := *rec
	dup.ID = "d-3"
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (shop_domain, topic, key)")
	}

	ignored := &WebhookDelivery{ID: "d-4", ShopDomain: "s", Topic: "orders/create", Key: "wh-2", Status: 200, ExpiresAt: now}
	if err := db.Create(ignored).Error; err != nil {
		t.Fatalf("insert without intake: %v", err)
	}
}
