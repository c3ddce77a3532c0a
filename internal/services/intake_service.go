// Package services – IntakeService
//
// This file implements IntakeService, the owner of the order intake record
// lifecycle: pending → processing → completed | error.
//
//   - Enqueue creates a pending record for an order with candidates; a
//     redelivered order maps onto the existing record.
//   - Claim is the compare-and-set pending → processing that keeps two
//     deliveries of the same order from compiling it twice.
//   - MarkCompleted / MarkError are last-write-wins between the two terminal
//     states; nothing ever returns to pending or processing.
//   - Settle is the single place where a pipeline Result becomes stored state.
//     A successful Result also stores the catalog it was compiled against.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/personalize"
	"github.com/tbourn/go-personalizer-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultQueryLimit = 50
	maxErrorRunes     = 2000
)

// IntakeService tracks intake records.
type IntakeService struct {
	DB *gorm.DB

	// DefaultLimit applies when Query is called with limit <= 0.
	DefaultLimit int
	// MaxLimit caps Query; 0 disables the cap.
	MaxLimit int

	// Now is the clock used for processed timestamps (UTC). Tests override it.
	Now func() time.Time
}

// NewIntakeService constructs an IntakeService with the given query limits.
func NewIntakeService(db *gorm.DB, defaultLimit, maxLimit int) *IntakeService {
	if defaultLimit <= 0 {
		defaultLimit = defaultQueryLimit
	}
	return &IntakeService{DB: db, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (s *IntakeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Enqueue stores a pending record for order. created is false when the
// order was already recorded, in which case the existing record is returned.
func (s *IntakeService) Enqueue(ctx context.Context, shop string, order *domain.OrderPayload, cands []domain.Candidate) (rec *domain.OrderIntake, created bool, err error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Enqueue",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.Int("candidates", len(cands)),
		),
	)
	defer span.End()

	if strings.TrimSpace(shop) == "" {
		return nil, false, ErrShopRequired
	}
	if len(cands) == 0 {
		return nil, false, ErrNoCandidates
	}
	if order == nil || order.ID == nil {
		return nil, false, ErrMalformedOrder
	}

	rec = &domain.OrderIntake{
		ShopDomain:  shop,
		OrderID:     *order.ID,
		OrderNumber: order.OrderNumber(),
		Summary:     datatypes.NewJSONType(order.Summary()),
		Candidates:  datatypes.NewJSONSlice(cands),
		Status:      domain.IntakePending,
	}
	err = repo.CreateIntake(ctx, s.DB, rec)
	if errors.Is(err, repo.ErrDuplicate) {
		existing, gerr := repo.GetIntakeByOrder(ctx, s.DB, shop, *order.ID)
		if gerr != nil {
			return nil, false, gerr
		}
		span.SetAttributes(attribute.Bool("intake.duplicate", true))
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(attribute.String("intake.id", rec.ID))
	return rec, true, nil
}

// Claim moves a pending record to processing. It returns false when the
// record was not pending (another delivery got there first).
func (s *IntakeService) Claim(ctx context.Context, id string) (bool, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Claim",
		trace.WithAttributes(attribute.String("intake.id", id)),
	)
	defer span.End()

	ok, err := repo.TransitionIntake(ctx, s.DB, id, domain.IntakeProcessing, nil)
	if err != nil {
		return false, err
	}
	if ok {
		intakeTransitions.WithLabelValues(string(domain.IntakeProcessing)).Inc()
	}
	span.SetAttributes(attribute.Bool("claimed", ok))
	return ok, nil
}

// MarkCompleted stores completed with a fresh processed timestamp and clears
// any previous error. Calling it again re-stamps the timestamp.
func (s *IntakeService) MarkCompleted(ctx context.Context, id string) (*domain.OrderIntake, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "MarkCompleted",
		trace.WithAttributes(attribute.String("intake.id", id)),
	)
	defer span.End()

	return s.complete(ctx, id, nil)
}

// complete marks id completed. A non-nil catalog replaces the stored catalog
// snapshot; nil keeps the one already there.
func (s *IntakeService) complete(ctx context.Context, id string, cat *domain.ShopCatalog) (*domain.OrderIntake, error) {
	fields := map[string]any{
		"processed_at":  s.now(),
		"error_message": "",
	}
	if cat != nil {
		fields["catalog_snapshot"] = datatypes.NewJSONType(cat)
	}
	return s.transition(ctx, id, domain.IntakeCompleted, fields)
}

// MarkError stores error with msg, regardless of the prior state, and clears
// the processed timestamp.
func (s *IntakeService) MarkError(ctx context.Context, id, msg string) (*domain.OrderIntake, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "MarkError",
		trace.WithAttributes(attribute.String("intake.id", id)),
	)
	defer span.End()

	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "unknown error"
	}
	if r := []rune(msg); len(r) > maxErrorRunes {
		msg = string(r[:maxErrorRunes])
	}
	return s.transition(ctx, id, domain.IntakeError, map[string]any{
		"processed_at":  nil,
		"error_message": msg,
	})
}

func (s *IntakeService) transition(ctx context.Context, id string, to domain.IntakeStatus, fields map[string]any) (*domain.OrderIntake, error) {
	ok, err := repo.TransitionIntake(ctx, s.DB, id, to, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIntakeNotFound
	}
	intakeTransitions.WithLabelValues(string(to)).Inc()
	return repo.GetIntake(ctx, s.DB, "", id)
}

// Settle stores the outcome of compiling record id.
func (s *IntakeService) Settle(ctx context.Context, id string, res personalize.Result) (*domain.OrderIntake, error) {
	if res.OK() {
		return s.complete(ctx, id, res.Catalog)
	}
	msg := "compilation failed"
	if res.Err != nil {
		msg = res.Err.Error()
	}
	return s.MarkError(ctx, id, msg)
}

// Get returns one record of shop.
func (s *IntakeService) Get(ctx context.Context, shop, id string) (*domain.OrderIntake, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("intake.id", id),
		),
	)
	defer span.End()

	if strings.TrimSpace(shop) == "" {
		return nil, ErrShopRequired
	}
	rec, err := repo.GetIntake(ctx, s.DB, shop, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrIntakeNotFound
	}
	return rec, err
}

// Limit clamps a requested page size to the configured bounds.
func (s *IntakeService) Limit(limit int) int {
	if limit <= 0 {
		limit = s.DefaultLimit
		if limit <= 0 {
			limit = defaultQueryLimit
		}
	}
	if s.MaxLimit > 0 && limit > s.MaxLimit {
		limit = s.MaxLimit
	}
	return limit
}

func parseStatusFilter(status string) (domain.IntakeStatus, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", nil
	}
	st, ok := domain.ParseIntakeStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Query returns records of shop, newest first, optionally filtered by status.
func (s *IntakeService) Query(ctx context.Context, shop, status string, limit int) ([]domain.OrderIntake, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Query",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("status", status),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if strings.TrimSpace(shop) == "" {
		return nil, ErrShopRequired
	}
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListIntakes(ctx, s.DB, shop, st, s.Limit(limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.OrderIntake{}
	}
	return items, nil
}

// Stats returns the count and latest update time of the records Query would
// scan, for ETag generation.
func (s *IntakeService) Stats(ctx context.Context, shop, status string) (int64, *time.Time, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return 0, nil, err
	}
	return repo.IntakeStats(ctx, s.DB, shop, st)
}
