package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrMissingField reports an order payload without one of the fields the
// pipeline cannot do without (id, name, line_items).
var ErrMissingField = errors.New("missing required field")

// OrderPayload is the subset of the upstream "orders/create" webhook body the
// backend consumes. Pointer fields distinguish "absent" from "zero".
type OrderPayload struct {
	ID        *int64         `json:"id"`
	Name      *string        `json:"name"`
	Email     string         `json:"email"`
	Customer  *OrderCustomer `json:"customer"`
	CreatedAt string         `json:"created_at"`
	LineItems *[]LineItem    `json:"line_items"`
}

// OrderCustomer carries the buyer's name as sent upstream.
type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LineItem is one product row of an order.
type LineItem struct {
	ID         int64              `json:"id"`
	ProductID  int64              `json:"product_id"`
	VariantID  int64              `json:"variant_id"`
	SKU        string             `json:"sku"`
	Title      string             `json:"title"`
	Quantity   int                `json:"quantity"`
	Properties []LineItemProperty `json:"properties"`
}

// LineItemProperty is one declared name/value pair on a line item.
type LineItemProperty struct {
	Name  string        `json:"name"`
	Value PropertyValue `json:"value"`
}

// PropertyValue accepts whatever scalar the upstream sent and keeps its
// textual form. Null decodes to "".
type PropertyValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *PropertyValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*v = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = PropertyValue(str)
	case s == "true" || s == "false":
		*v = PropertyValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			// Arrays and objects are kept verbatim.
			*v = PropertyValue(s)
			return nil
		}
		*v = PropertyValue(n.String())
	}
	return nil
}

// Validate checks the fields a production record cannot be built without.
func (o *OrderPayload) Validate() error {
	var missing []string
	if o.ID == nil {
		missing = append(missing, "id")
	}
	if o.Name == nil {
		missing = append(missing, "name")
	}
	if o.LineItems == nil {
		missing = append(missing, "line_items")
	}
	if len(missing) > 0 {
		return &FieldError{Fields: missing}
	}
	return nil
}

// FieldError lists the required fields absent from a payload.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return ErrMissingField.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *FieldError) Unwrap() error { return ErrMissingField }

// Summary extracts the customer-facing parts of the order kept on intake.
func (o *OrderPayload) Summary() OrderSummary {
	s := OrderSummary{Email: o.Email, CreatedAt: o.CreatedAt}
	if o.Customer != nil {
		s.FirstName = o.Customer.FirstName
		s.LastName = o.Customer.LastName
	}
	return s
}

// OrderNumber returns the human order number ("#1001"), or the numeric id
// when the payload carries no name.
func (o *OrderPayload) OrderNumber() string {
	if o.Name != nil {
		return *o.Name
	}
	if o.ID != nil {
		return strconv.FormatInt(*o.ID, 10)
	}
	return ""
}

// Items returns the line items, or nil when the payload has none.
func (o *OrderPayload) Items() []LineItem {
	if o.LineItems == nil {
		return nil
	}
	return *o.LineItems
}
