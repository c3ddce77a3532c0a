package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// IntakeStats reports how many intake records shop has (optionally only in
// status) and the most recent UpdatedAt among them, which is nil when there
// are none. Together they fingerprint a listing for ETag purposes.
func IntakeStats(ctx context.Context, db *gorm.DB, shop string, status domain.IntakeStatus) (int64, *time.Time, error) {
	scope := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&domain.OrderIntake{}).Where("shop_domain = ?", shop)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var n int64
	if err := scope().Count(&n).Error; err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, nil
	}

	// MAX(updated_at) comes back as TEXT from sqlite; order and take the row.
	var latest []time.Time
	if err := scope().Order("updated_at DESC").Limit(1).Pluck("updated_at", &latest).Error; err != nil {
		return 0, nil, err
	}
	if len(latest) == 0 {
		return n, nil, nil
	}
	return n, &latest[0], nil
}
