// Package services – WebhookService
//
// Wraps ProcessOrder with delivery dedupe keyed by the upstream webhook id.
// A delivery id seen within the TTL replays the stored outcome (the intake
// record, or nothing for an ignored order) without running the pipeline.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopicOrdersCreate is the webhook topic of order creation notifications.
const TopicOrdersCreate = "orders/create"

const defaultDeliveryTTL = 24 * time.Hour

// OrderProcessor runs the intake pipeline for one order payload.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, shop string, raw []byte) (*domain.OrderIntake, error)
}

// WebhookService deduplicates webhook deliveries in front of the pipeline.
type WebhookService struct {
	DB     *gorm.DB
	Orders OrderProcessor
	// TTL bounds how long a delivery id is remembered.
	TTL time.Duration
	Now func() time.Time
}

func (s *WebhookService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *WebhookService) ttl() time.Duration {
	if s.TTL <= 0 {
		return defaultDeliveryTTL
	}
	return s.TTL
}

// Seen reports whether deliveryID was already processed for (shop, topic).
func (s *WebhookService) Seen(ctx context.Context, shop, topic, deliveryID string) (bool, error) {
	_, err := repo.GetDelivery(ctx, s.DB, shop, topic, deliveryID, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Deliver processes an "order created" notification. replayed is true when
// deliveryID was already processed; rec is then the stored outcome.
func (s *WebhookService) Deliver(ctx context.Context, shop, deliveryID string, raw []byte) (rec *domain.OrderIntake, replayed bool, err error) {
	tr := otel.Tracer("services/WebhookService")
	ctx, span := tr.Start(ctx, "Deliver",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("webhook.id", deliveryID),
		),
	)
	defer span.End()

	deliveryID = strings.TrimSpace(deliveryID)
	if deliveryID != "" {
		d, gerr := repo.GetDelivery(ctx, s.DB, shop, TopicOrdersCreate, deliveryID, s.now())
		switch {
		case gerr == nil:
			span.SetAttributes(attribute.Bool("webhook.replayed", true))
			if d.IntakeID == "" {
				return nil, true, nil
			}
			rec, gerr = repo.GetIntake(ctx, s.DB, shop, d.IntakeID)
			if gerr != nil {
				return nil, true, gerr
			}
			return rec, true, nil
		case !errors.Is(gerr, repo.ErrNotFound):
			return nil, false, gerr
		}
	}

	rec, err = s.Orders.ProcessOrder(ctx, shop, raw)
	if err != nil || deliveryID == "" {
		return rec, false, err
	}

	intakeID := ""
	if rec != nil {
		intakeID = rec.ID
	}
	if _, cerr := repo.CreateDelivery(ctx, s.DB, shop, TopicOrdersCreate, deliveryID, intakeID, http.StatusOK, s.ttl()); cerr != nil && !errors.Is(cerr, repo.ErrDuplicate) {
		// The order itself is recorded; a lost delivery row only costs a
		// second pass through the intake dedupe.
		zerolog.Ctx(ctx).Warn().Err(cerr).Str("webhook_id", deliveryID).Msg("store webhook delivery")
	}
	return rec, false, nil
}

// Purge removes expired delivery records.
func (s *WebhookService) Purge(ctx context.Context) (int64, error) {
	return repo.PurgeDeliveries(ctx, s.DB, s.now())
}
