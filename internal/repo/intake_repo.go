// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for OrderIntake.
//
// Status changes go through TransitionIntake, a conditional UPDATE guarded by
// the set of states allowed to move to the target (domain.SourcesFor). The
// boolean result tells the caller whether the row actually moved.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// CreateIntake inserts in with a fresh UUID and pending status. A second
// record for the same (shop, order id) yields ErrDuplicate.
func CreateIntake(ctx context.Context, db *gorm.DB, in *domain.OrderIntake) error {
	now := time.Now().UTC()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		in.Status = domain.IntakePending
	}
	in.CreatedAt, in.UpdatedAt = now, now
	return translate(db.WithContext(ctx).Create(in).Error)
}

// GetIntake fetches a record by id, scoped to shop. An empty shop disables
// the scope (internal callers only).
func GetIntake(ctx context.Context, db *gorm.DB, shop, id string) (*domain.OrderIntake, error) {
	q := db.WithContext(ctx).Where("id = ?", id)
	if shop != "" {
		q = q.Where("shop_domain = ?", shop)
	}
	var in domain.OrderIntake
	if err := q.First(&in).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

// GetIntakeByOrder fetches the record of an upstream order.
func GetIntakeByOrder(ctx context.Context, db *gorm.DB, shop string, orderID int64) (*domain.OrderIntake, error) {
	var in domain.OrderIntake
	err := db.WithContext(ctx).
		Where("shop_domain = ? AND order_id = ?", shop, orderID).
		First(&in).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// ListIntakes returns up to limit records of shop, newest first, optionally
// restricted to one status.
func ListIntakes(ctx context.Context, db *gorm.DB, shop string, status domain.IntakeStatus, limit int) ([]domain.OrderIntake, error) {
	q := db.WithContext(ctx).Where("shop_domain = ?", shop)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.OrderIntake
	err := q.Order("created_at desc").Order("id desc").Limit(limit).Find(&out).Error
	return out, err
}

// TransitionIntake moves record id to status to, applying the extra column
// updates in fields. It only touches the row when its current status may
// transition to to, and reports whether a row changed.
func TransitionIntake(ctx context.Context, db *gorm.DB, id string, to domain.IntakeStatus, fields map[string]any) (bool, error) {
	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	for k, v := range fields {
		updates[k] = v
	}

	sources := make([]string, 0, 4)
	for _, s := range domain.SourcesFor(to) {
		sources = append(sources, string(s))
	}
	if len(sources) == 0 {
		return false, nil
	}

	res := db.WithContext(ctx).
		Model(&domain.OrderIntake{}).
		Where("id = ? AND status IN ?", id, sources).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
