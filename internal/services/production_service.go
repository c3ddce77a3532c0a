// Package services – ProductionService
//
// Exposes the production record of a completed intake. The record is
// recomputed from the stored candidates and the catalog snapshot taken when
// the intake completed, so later catalog edits do not change it.
package services

import (
	"context"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/personalize"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProductionService derives production records for completed intakes.
type ProductionService struct {
	Catalogs CatalogResolver
	Intakes  *IntakeService
}

// Get returns the production record of intake id. Records that are not
// completed yield ErrProductionUnavailable.
func (s *ProductionService) Get(ctx context.Context, shop, id string) (*domain.ProductionRecord, error) {
	tr := otel.Tracer("services/ProductionService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("shop.domain", shop),
			attribute.String("intake.id", id),
		),
	)
	defer span.End()

	rec, err := s.Intakes.Get(ctx, shop, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.IntakeCompleted {
		return nil, ErrProductionUnavailable
	}

	cat := rec.CatalogSnapshot.Data()
	if cat == nil {
		// Completed before snapshots were taken.
		if cat, err = s.Catalogs.Resolve(ctx, shop); err != nil {
			return nil, err
		}
	}
	res := personalize.SafeCompile(rec, cat)
	if !res.OK() {
		return nil, res.Err
	}
	return res.Production, nil
}
