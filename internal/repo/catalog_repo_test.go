package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

func TestGetCatalog_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.ShopCatalog{})
	c, err := GetCatalog(context.Background(), db, "missing")
	if c != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound), got (%v, %v)", c, err)
	}
}

func TestCreateCatalog_ThenDuplicate(t *testing.T) {
	db := newTestDB(t, &domain.ShopCatalog{})
	ctx := context.Background()

	if err := CreateCatalog(ctx, db, domain.DefaultCatalog("s")); err != nil {
		t.Fatalf("CreateCatalog: %v", err)
	}
	if err := CreateCatalog(ctx, db, domain.DefaultCatalog("s")); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := GetCatalog(ctx, db, "s")
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(got.Fonts) != 4 || got.Fonts[2].Code != "script" || !got.Fonts[2].Price.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected fonts: %+v", got.Fonts)
	}
}

func TestCreateCatalog_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if err := CreateCatalog(context.Background(), db, domain.DefaultCatalog("s")); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestUpsertCatalog_InsertThenOverwrite_RefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t, &domain.ShopCatalog{})
	ctx := context.Background()

	first := domain.DefaultCatalog("s")
	if err := UpsertCatalog(ctx, db, first); err != nil {
		t.Fatalf("UpsertCatalog insert: %v", err)
	}
	before, _ := GetCatalog(ctx, db, "s")

	time.Sleep(5 * time.Millisecond)
	next := &domain.ShopCatalog{
		ShopDomain: "s",
		Placements: datatypes.JSONSlice[domain.Placement]{{ID: 9, Name: "Hood", Code: "hood", Price: decimal.RequireFromString("2.50")}},
	}
	if err := UpsertCatalog(ctx, db, next); err != nil {
		t.Fatalf("UpsertCatalog overwrite: %v", err)
	}

	after, err := GetCatalog(ctx, db, "s")
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(after.Placements) != 1 || after.Placements[0].Code != "hood" || !after.Placements[0].Price.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("placements not overwritten: %+v", after.Placements)
	}
	if len(after.Fonts) != 0 || len(after.TextOptions) != 0 {
		t.Fatalf("nil lists should be stored as empty: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("created_at must survive upsert: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
}

func TestCustomization_GetMissing_UpsertTwice(t *testing.T) {
	db := newTestDB(t, &domain.ProductCustomization{})
	ctx := context.Background()

	if _, err := GetCustomization(ctx, db, "s", "42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	pc := &domain.ProductCustomization{ShopDomain: "s", ProductID: "42", Enabled: true, Settings: datatypes.JSONMap{"color": "red"}}
	if err := UpsertCustomization(ctx, db, pc); err != nil {
		t.Fatalf("UpsertCustomization insert: %v", err)
	}
	pc2 := &domain.ProductCustomization{ShopDomain: "s", ProductID: "42", Enabled: false, Settings: datatypes.JSONMap{"color": "blue"}}
	if err := UpsertCustomization(ctx, db, pc2); err != nil {
		t.Fatalf("UpsertCustomization update: %v", err)
	}

	got, err := GetCustomization(ctx, db, "s", "42")
	if err != nil {
		t.Fatalf("GetCustomization: %v", err)
	}
	if got.Enabled || got.Settings["color"] != "blue" {
		t.Fatalf("unexpected row: %+v", got)
	}

	var n int64
	db.Model(&domain.ProductCustomization{}).Count(&n)
	if n != 1 {
		t.Fatalf("upsert should keep one row per (shop, product), got %d", n)
	}
}
