package domain

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// IntakeStatus is the lifecycle state of an order intake record.
type IntakeStatus string

const (
	IntakePending    IntakeStatus = "pending"
	IntakeProcessing IntakeStatus = "processing"
	IntakeCompleted  IntakeStatus = "completed"
	IntakeError      IntakeStatus = "error"
)

// intakeTransitions lists, per state, the states a record may move to.
// Terminal states only accept another terminal write (last write wins).
var intakeTransitions = map[IntakeStatus][]IntakeStatus{
	IntakePending:    {IntakeProcessing, IntakeCompleted, IntakeError},
	IntakeProcessing: {IntakeCompleted, IntakeError},
	IntakeCompleted:  {IntakeCompleted, IntakeError},
	IntakeError:      {IntakeError, IntakeCompleted},
}

// CanTransition reports whether a record in from may move to to.
func CanTransition(from, to IntakeStatus) bool {
	return slices.Contains(intakeTransitions[from], to)
}

// SourcesFor returns every state from which to is reachable, in a stable
// order. Repositories use it as the guard of conditional status updates.
func SourcesFor(to IntakeStatus) []IntakeStatus {
	var out []IntakeStatus
	for _, from := range []IntakeStatus{IntakePending, IntakeProcessing, IntakeCompleted, IntakeError} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// ParseIntakeStatus validates a status filter coming from a query string.
func ParseIntakeStatus(s string) (IntakeStatus, bool) {
	st := IntakeStatus(s)
	if _, ok := intakeTransitions[st]; ok {
		return st, true
	}
	return "", false
}

// IsTerminal reports whether s is completed or error.
func (s IntakeStatus) IsTerminal() bool {
	return s == IntakeCompleted || s == IntakeError
}

// OrderSummary is the customer information captured from the raw order.
type OrderSummary struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

// Candidate is a line item that carries a customization request.
type Candidate struct {
	LineItemID int64      `json:"lineItemId"`
	ProductID  int64      `json:"productId"`
	VariantID  int64      `json:"variantId"`
	SKU        string     `json:"sku"`
	Title      string     `json:"title"`
	Quantity   int        `json:"quantity"`
	Properties Properties `json:"properties"`
}

// OrderIntake is the persisted record of one order's customization
// processing attempt. (ShopDomain, OrderID) is unique so a redelivered order
// maps onto the existing record.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - ShopDomain / OrderID: owning shop and upstream order id.
//   - OrderNumber: human order number (e.g. "#1001").
//   - Summary: customer email/name and upstream creation time (JSON column).
//   - Candidates: customization candidates extracted at intake (JSON column).
//   - Status: pending, processing, completed or error (DB check constraint).
//   - ProcessedAt: stamped when the record completes; cleared on error.
//   - ErrorMessage: failure detail; cleared on completion.
//   - CatalogSnapshot: the catalog the record was completed against (JSON
//     column, null until then). Production records are rebuilt from it.
type OrderIntake struct {
	ID              string                           `json:"id"             gorm:"type:char(36);primaryKey"`
	ShopDomain      string                           `json:"shop"           gorm:"type:varchar(255);not null;uniqueIndex:ux_intake_shop_order,priority:1;index:idx_intake_shop_created,priority:1"`
	OrderID         int64                            `json:"orderId"        gorm:"not null;uniqueIndex:ux_intake_shop_order,priority:2"`
	OrderNumber     string                           `json:"orderNumber"    gorm:"type:varchar(64);not null"`
	Summary         datatypes.JSONType[OrderSummary] `json:"orderData"`
	Candidates      datatypes.JSONSlice[Candidate]   `json:"customizations"`
	Status          IntakeStatus                     `json:"status"         gorm:"type:varchar(16);not null;default:'pending';index;check:status IN ('pending','processing','completed','error')"`
	ProcessedAt     *time.Time                       `json:"processedAt,omitempty"`
	ErrorMessage    string                           `json:"error,omitempty" gorm:"type:text"`
	CatalogSnapshot datatypes.JSONType[*ShopCatalog] `json:"-"`
	CreatedAt       time.Time                        `json:"createdAt"      gorm:"index:idx_intake_shop_created,priority:2"`
	UpdatedAt       time.Time                        `json:"updatedAt"`
}

// TableName returns the database table name for OrderIntake.
func (OrderIntake) TableName() string { return "order_intakes" }
