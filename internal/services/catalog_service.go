// Package services – CatalogService
//
// This file implements CatalogService, the resolver of per-shop catalogs.
// Resolve returns the stored catalog or lazily creates the documented default;
// the unique key on shop_domain settles concurrent first access (the loser
// re-reads the winner's row). Replace performs a shallow upsert.
//
// Observability: public methods are OpenTelemetry-instrumented with the shop
// domain as span attribute.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/personalize"
	"github.com/tbourn/go-personalizer-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CatalogRepo defines the repository contract required by CatalogService.
type CatalogRepo interface {
	// GetCatalog fetches a shop's catalog or returns repo.ErrNotFound.
	GetCatalog(ctx context.Context, db *gorm.DB, shop string) (*domain.ShopCatalog, error)

	// CreateCatalog inserts a catalog; repo.ErrDuplicate on a lost race.
	CreateCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error

	// UpsertCatalog inserts or overwrites a catalog.
	UpsertCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error
}

// gormCatalogRepo adapts the repo package functions to CatalogRepo.
type gormCatalogRepo struct{}

func (gormCatalogRepo) GetCatalog(ctx context.Context, db *gorm.DB, shop string) (*domain.ShopCatalog, error) {
	return repo.GetCatalog(ctx, db, shop)
}

func (gormCatalogRepo) CreateCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error {
	return repo.CreateCatalog(ctx, db, c)
}

func (gormCatalogRepo) UpsertCatalog(ctx context.Context, db *gorm.DB, c *domain.ShopCatalog) error {
	return repo.UpsertCatalog(ctx, db, c)
}

// CatalogService resolves and replaces shop catalogs.
type CatalogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the catalog repository; nil means the GORM-backed default.
	Repo CatalogRepo
}

// NewCatalogService constructs a CatalogService backed by the repo package.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db, Repo: gormCatalogRepo{}}
}

func (s *CatalogService) store() CatalogRepo {
	if s.Repo == nil {
		return gormCatalogRepo{}
	}
	return s.Repo
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

// Resolve returns the catalog of shop, creating the default one on first
// access. Persistence failures are wrapped with ErrCatalogUnavailable.
func (s *CatalogService) Resolve(ctx context.Context, shop string) (*domain.ShopCatalog, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "Resolve",
		trace.WithAttributes(attribute.String("shop.domain", shop)),
	)
	defer span.End()

	shop = strings.TrimSpace(shop)
	if shop == "" {
		return nil, ErrShopRequired
	}

	c, err := s.store().GetCatalog(ctx, s.DB, shop)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		span.SetStatus(codes.Error, err.Error())
		return nil, unavailable(err)
	}

	def := domain.DefaultCatalog(shop)
	switch err := s.store().CreateCatalog(ctx, s.DB, def); {
	case err == nil, errors.Is(err, repo.ErrDuplicate):
		if err == nil {
			catalogsCreated.Inc()
			span.SetAttributes(attribute.Bool("catalog.created", true))
		}
		// Read back so callers always see the stored form. On a lost
		// creation race this is the winner's row.
		c, gerr := s.store().GetCatalog(ctx, s.DB, shop)
		if gerr != nil {
			span.SetStatus(codes.Error, gerr.Error())
			return nil, unavailable(gerr)
		}
		return c, nil
	default:
		span.SetStatus(codes.Error, err.Error())
		return nil, unavailable(err)
	}
}

// Replace upserts the lists present in patch onto the shop's catalog and
// returns the stored result. A shop without a catalog starts from empty
// lists, so fields absent from patch are stored empty.
func (s *CatalogService) Replace(ctx context.Context, shop string, patch domain.CatalogPatch) (*domain.ShopCatalog, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "Replace",
		trace.WithAttributes(attribute.String("shop.domain", shop)),
	)
	defer span.End()

	shop = strings.TrimSpace(shop)
	if shop == "" {
		return nil, ErrShopRequired
	}

	cur, err := s.store().GetCatalog(ctx, s.DB, shop)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		cur = &domain.ShopCatalog{ShopDomain: shop}
	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		return nil, unavailable(err)
	}

	patch.Apply(cur)
	cur.Normalize()
	if err := s.store().UpsertCatalog(ctx, s.DB, cur); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, unavailable(err)
	}

	stored, err := s.store().GetCatalog(ctx, s.DB, shop)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, unavailable(err)
	}
	return stored, nil
}

// Quote prices a customization request against the shop's catalog.
func (s *CatalogService) Quote(ctx context.Context, shop string, props domain.Properties) (*personalize.Quote, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "Quote",
		trace.WithAttributes(attribute.String("shop.domain", shop)),
	)
	defer span.End()

	cat, err := s.Resolve(ctx, shop)
	if err != nil {
		return nil, err
	}
	q := personalize.QuoteFor(props, cat)
	span.SetAttributes(attribute.String("quote.total", q.Total.String()))
	return &q, nil
}
