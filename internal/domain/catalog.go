// Package domain defines the persistence models and value types of the
// personalization backend: per-shop catalogs, product customization toggles,
// order intake records, webhook delivery records and the derived production
// record. These types are mapped with GORM and shared across the repository,
// pipeline and service layers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// Prices travel as JSON numbers so catalog documents stay byte-compatible
	// with what the storefront widget already reads.
	decimal.MarshalJSONWithoutQuotes = true
}

// Geometry is the print area of a placement, in widget canvas units.
// Rotation is optional and expressed in degrees.
type Geometry struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	MaxWidth  float64  `json:"maxWidth"`
	MaxHeight float64  `json:"maxHeight"`
	Rotation  *float64 `json:"rotation,omitempty"`
}

// TextOption is a text field a shop offers (e.g. "Player Name").
type TextOption struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	MaxLength int             `json:"maxLength"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// Placement is a named print zone on a product.
type Placement struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	Price    decimal.Decimal `json:"price"`
	Geometry Geometry        `json:"geometry"`
}

// Font is a selectable typeface. DisplayLabel is the exact string the widget
// writes into the "Font Style" line-item property.
type Font struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Price        decimal.Decimal `json:"price"`
	DisplayLabel string          `json:"displayLabel"`
}

// ShopCatalog is the per-shop configuration used to interpret customization
// requests. Exactly one row exists per shop domain.
//
// Fields:
//   - ShopDomain: merchant storefront identifier (primary key).
//   - TextOptions / Placements / Fonts: ordered lists stored as JSON columns.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; UpdatedAt is
//     refreshed on every replace.
type ShopCatalog struct {
	ShopDomain  string                          `json:"shop"        gorm:"type:varchar(255);primaryKey"`
	TextOptions datatypes.JSONSlice[TextOption] `json:"textOptions" gorm:"not null"`
	Placements  datatypes.JSONSlice[Placement]  `json:"placements"  gorm:"not null"`
	Fonts       datatypes.JSONSlice[Font]       `json:"fonts"       gorm:"not null"`
	CreatedAt   time.Time                       `json:"createdAt"`
	UpdatedAt   time.Time                       `json:"updatedAt"`
}

// TableName returns the database table name for ShopCatalog.
func (ShopCatalog) TableName() string { return "shop_catalogs" }

// DefaultFontLabel is assumed when an order line carries no "Font Style".
const DefaultFontLabel = "Standard Font (Free)"

// DefaultCatalog returns the documented catalog a shop starts with. The
// values are fixed: downstream production files are compared against them.
func DefaultCatalog(shop string) *ShopCatalog {
	sleeve := -90.0
	sleeveRot := func() *float64 { r := sleeve; return &r }

	return &ShopCatalog{
		ShopDomain: shop,
		TextOptions: datatypes.JSONSlice[TextOption]{
			{ID: 1, Name: "Player Name", MaxLength: 15, BasePrice: decimal.Zero},
			{ID: 2, Name: "Custom Text", MaxLength: 25, BasePrice: decimal.Zero},
			{ID: 3, Name: "Jersey Number", MaxLength: 3, BasePrice: decimal.Zero},
		},
		Placements: datatypes.JSONSlice[Placement]{
			{ID: 1, Name: "Chest", Code: "chest", Price: decimal.NewFromInt(5),
				Geometry: Geometry{X: 360, Y: 250, MaxWidth: 200, MaxHeight: 60}},
			{ID: 2, Name: "Back", Code: "back", Price: decimal.NewFromInt(5),
				Geometry: Geometry{X: 360, Y: 300, MaxWidth: 280, MaxHeight: 100}},
			{ID: 3, Name: "Left Sleeve", Code: "left_sleeve", Price: decimal.NewFromInt(7),
				Geometry: Geometry{X: 150, Y: 320, MaxWidth: 80, MaxHeight: 40, Rotation: sleeveRot()}},
			{ID: 4, Name: "Right Sleeve", Code: "right_sleeve", Price: decimal.NewFromInt(7),
				Geometry: Geometry{X: 150, Y: 320, MaxWidth: 80, MaxHeight: 40, Rotation: sleeveRot()}},
		},
		Fonts: datatypes.JSONSlice[Font]{
			{ID: 1, Name: "Standard", Code: "standard", Price: decimal.Zero, DisplayLabel: DefaultFontLabel},
			{ID: 2, Name: "Varsity", Code: "varsity", Price: decimal.NewFromInt(3), DisplayLabel: "Varsity Style (+$3)"},
			{ID: 3, Name: "Script", Code: "script", Price: decimal.NewFromInt(5), DisplayLabel: "Script Style (+$5)"},
			{ID: 4, Name: "Modern", Code: "modern", Price: decimal.NewFromInt(3), DisplayLabel: "Modern Style (+$3)"},
		},
	}
}

// CatalogPatch carries a partial or full catalog replacement. Nil lists are
// left untouched; non-nil lists (including empty ones) overwrite.
type CatalogPatch struct {
	TextOptions *[]TextOption `json:"textOptions,omitempty"`
	Placements  *[]Placement  `json:"placements,omitempty"`
	Fonts       *[]Font       `json:"fonts,omitempty"`
}

// Apply shallow-overwrites the lists present in p onto c.
func (p CatalogPatch) Apply(c *ShopCatalog) {
	if p.TextOptions != nil {
		c.TextOptions = datatypes.NewJSONSlice(nonNil(*p.TextOptions))
	}
	if p.Placements != nil {
		c.Placements = datatypes.NewJSONSlice(nonNil(*p.Placements))
	}
	if p.Fonts != nil {
		c.Fonts = datatypes.NewJSONSlice(nonNil(*p.Fonts))
	}
}

// Normalize replaces nil lists with empty ones so stored JSON is always "[]".
func (c *ShopCatalog) Normalize() {
	if c.TextOptions == nil {
		c.TextOptions = datatypes.JSONSlice[TextOption]{}
	}
	if c.Placements == nil {
		c.Placements = datatypes.JSONSlice[Placement]{}
	}
	if c.Fonts == nil {
		c.Fonts = datatypes.JSONSlice[Font]{}
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
