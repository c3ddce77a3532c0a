// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for WebhookDelivery,
// used to replay the outcome of redelivered webhook notifications.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// GetDelivery returns a non-expired delivery record or ErrNotFound.
func GetDelivery(ctx context.Context, db *gorm.DB, shop, topic, key string, now time.Time) (*domain.WebhookDelivery, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.WebhookDelivery
	err := db.WithContext(ctx).
		Where("shop_domain = ? AND topic = ? AND key = ? AND expires_at > ?", shop, topic, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateDelivery inserts a record and returns ErrDuplicate on unique violation.
// An expired record under the same key is replaced.
func CreateDelivery(ctx context.Context, db *gorm.DB, shop, topic, key, intakeID string, status int, ttl time.Duration) (*domain.WebhookDelivery, error) {
	now := time.Now().UTC()
	rec := &domain.WebhookDelivery{
		ID:         uuid.NewString(),
		ShopDomain: shop,
		Topic:      topic,
		Key:        key,
		IntakeID:   intakeID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_domain = ? AND topic = ? AND key = ? AND expires_at <= ?", shop, topic, key, now).
			Delete(&domain.WebhookDelivery{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

// PurgeDeliveries deletes records that expired before now.
func PurgeDeliveries(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.WebhookDelivery{})
	return res.RowsAffected, res.Error
}
