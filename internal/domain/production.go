package domain

// Instruction types and colors emitted by the compiler.
const (
	InstructionText = "text"
	ColorWhite      = "white"
	FallbackFont    = "standard"
)

// Instruction is one fully resolved print operation.
type Instruction struct {
	Type      string   `json:"type"`
	Value     string   `json:"value"`
	Placement string   `json:"placement"`
	Font      string   `json:"font"`
	Color     string   `json:"color"`
	Geometry  Geometry `json:"geometry"`
}

// ProductionLineItem is a customized line item with its instructions.
type ProductionLineItem struct {
	LineItemID     int64         `json:"lineItemId"`
	ProductID      int64         `json:"productId"`
	VariantID      int64         `json:"variantId"`
	SKU            string        `json:"sku"`
	Title          string        `json:"title"`
	Quantity       int           `json:"quantity"`
	Customizations []Instruction `json:"customizations"`
}

// ProductionCustomer identifies the buyer on a production record.
type ProductionCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProductionRecord is the manufacturing description of an order. It is
// derived from an intake record and a catalog and is never stored.
type ProductionRecord struct {
	OrderID     int64                `json:"orderId"`
	OrderNumber string               `json:"orderNumber"`
	CreatedAt   string               `json:"createdAt"`
	Customer    ProductionCustomer   `json:"customer"`
	LineItems   []ProductionLineItem `json:"lineItems"`
}
