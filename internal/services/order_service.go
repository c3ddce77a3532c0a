// Package services – OrderService
//
// ProcessOrder is the single inbound entry point of the order-to-production
// pipeline: decode and validate the upstream payload, extract candidates,
// enqueue, claim, resolve the catalog, compile, settle.
//
// Failures after the record exists (catalog lookup, compilation) are stored
// on the record and never returned, so the upstream notification is still
// acknowledged. Only malformed payloads and persistence failures before the
// record exists surface as errors.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/personalize"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CatalogResolver is the catalog lookup the pipeline depends on.
type CatalogResolver interface {
	Resolve(ctx context.Context, shop string) (*domain.ShopCatalog, error)
}

// OrderService runs the intake pipeline.
type OrderService struct {
	Catalogs CatalogResolver
	Intakes  *IntakeService
}

// DecodeOrder parses and validates a raw order payload.
func DecodeOrder(raw []byte) (*domain.OrderPayload, error) {
	var o domain.OrderPayload
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOrder, err)
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOrder, err)
	}
	return &o, nil
}

// ProcessOrder handles one "order created" notification for shop. It
// returns (nil, nil) when the order carries no customization.
func (s *OrderService) ProcessOrder(ctx context.Context, shop string, raw []byte) (*domain.OrderIntake, error) {
	shop = strings.TrimSpace(shop)
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "ProcessOrder",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.Int("payload.bytes", len(raw)),
		),
	)
	defer span.End()
	lg := zerolog.Ctx(ctx).With().Str("shop", shop).Logger()

	if shop == "" {
		return nil, ErrShopRequired
	}

	order, err := DecodeOrder(raw)
	if err != nil {
		ordersReceived.WithLabelValues("malformed").Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("order.id", *order.ID))
	lg = lg.With().Int64("order_id", *order.ID).Logger()

	cands := personalize.ExtractCandidates(order)
	if len(cands) == 0 {
		ordersReceived.WithLabelValues("ignored").Inc()
		lg.Debug().Msg("order has no customizations")
		return nil, nil
	}

	rec, created, err := s.Intakes.Enqueue(ctx, shop, order, cands)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("intake.id", rec.ID))
	// A redelivery of a record still pending (its first attempt never got to
	// claim it) goes through the claim like a fresh one.
	if !created && rec.Status != domain.IntakePending {
		ordersReceived.WithLabelValues("duplicate").Inc()
		lg.Info().Str("intake_id", rec.ID).Str("status", string(rec.Status)).Msg("order already recorded")
		return rec, nil
	}

	claimed, err := s.Intakes.Claim(ctx, rec.ID)
	if err != nil {
		return s.fail(ctx, lg, rec, fmt.Errorf("claim: %w", err))
	}
	if !claimed {
		// A concurrent delivery owns the record now.
		ordersReceived.WithLabelValues("duplicate").Inc()
		return s.Intakes.Get(ctx, shop, rec.ID)
	}

	cat, err := s.Catalogs.Resolve(ctx, shop)
	if err != nil {
		return s.fail(ctx, lg, rec, err)
	}

	start := time.Now()
	res := personalize.SafeCompile(rec, cat)
	compileDuration.Observe(time.Since(start).Seconds())

	settled, err := s.Intakes.Settle(ctx, rec.ID, res)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res.OK() {
		ordersReceived.WithLabelValues("completed").Inc()
		lg.Info().
			Str("intake_id", rec.ID).
			Int("line_items", len(res.Production.LineItems)).
			Msg("order compiled")
	} else {
		ordersReceived.WithLabelValues("error").Inc()
		lg.Warn().Str("intake_id", rec.ID).Err(res.Err).Msg("order compilation failed")
	}
	return settled, nil
}

// fail records err on rec and returns the updated record. Only a failure to
// store the error is returned to the caller.
func (s *OrderService) fail(ctx context.Context, lg zerolog.Logger, rec *domain.OrderIntake, cause error) (*domain.OrderIntake, error) {
	ordersReceived.WithLabelValues("error").Inc()
	lg.Error().Str("intake_id", rec.ID).Err(cause).Msg("order processing failed")

	updated, err := s.Intakes.Settle(ctx, rec.ID, personalize.Failed(cause))
	if err != nil {
		return nil, err
	}
	return updated, nil
}
