// Package personalize turns order line items into production instructions.
//
// Everything here is a pure function of its inputs: no I/O, no logging, no
// clocks. The service layer supplies the catalog and persists the outcome.
package personalize

import "github.com/tbourn/go-personalizer-backend/internal/domain"

// ExtractCandidates returns the line items of order that carry a
// customization request, in their original order.
//
// A line item qualifies when at least one of domain.TextSourceKeys holds a
// non-empty value. Items without properties are skipped. Duplicate property
// names resolve to the last value.
func ExtractCandidates(order *domain.OrderPayload) []domain.Candidate {
	if order == nil {
		return nil
	}

	var out []domain.Candidate
	for _, li := range order.Items() {
		if len(li.Properties) == 0 {
			continue
		}
		var props domain.Properties
		for _, p := range li.Properties {
			props.Set(p.Name, string(p.Value))
		}
		if _, ok := props.Text(); !ok {
			continue
		}
		out = append(out, domain.Candidate{
			LineItemID: li.ID,
			ProductID:  li.ProductID,
			VariantID:  li.VariantID,
			SKU:        li.SKU,
			Title:      li.Title,
			Quantity:   li.Quantity,
			Properties: props,
		})
	}
	return out
}
