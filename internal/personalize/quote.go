package personalize

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// Quote is the price breakdown of a customization request before checkout.
type Quote struct {
	Text           string          `json:"text"`
	TextOption     string          `json:"textOption,omitempty"`
	MaxLength      int             `json:"maxLength,omitempty"`
	TooLong        bool            `json:"tooLong"`
	Placements     []string        `json:"placements"`
	Font           string          `json:"font"`
	TextPrice      decimal.Decimal `json:"textPrice"`
	PlacementPrice decimal.Decimal `json:"placementPrice"`
	FontPrice      decimal.Decimal `json:"fontPrice"`
	Total          decimal.Decimal `json:"total"`
}

// Priced reports whether the request resolved to at least one placement.
func (q Quote) Priced() bool { return len(q.Placements) > 0 }

// QuoteFor prices props against cat using the same resolution rules as
// Interpret. The text option is the one named like the property the text
// came from ("Player Name", ...). A request that would produce no
// instruction quotes zero.
func QuoteFor(props domain.Properties, cat *domain.ShopCatalog) Quote {
	q := Quote{
		Placements:     []string{},
		TextPrice:      decimal.Zero,
		PlacementPrice: decimal.Zero,
		FontPrice:      decimal.Zero,
		Total:          decimal.Zero,
	}

	sel, ok := resolve(props, cat)
	if !ok || len(sel.placements) == 0 {
		q.Text, _ = props.Text()
		return q
	}

	q.Text = upper(sel.text)
	q.Font = sel.fontCode
	q.FontPrice = sel.font.Price

	if opt, found := MatchExact(cat.TextOptions, func(o domain.TextOption) string { return o.Name }, sel.textKey); found {
		q.TextOption = opt.Name
		q.MaxLength = opt.MaxLength
		q.TextPrice = opt.BasePrice
		q.TooLong = opt.MaxLength > 0 && utf8.RuneCountInString(sel.text) > opt.MaxLength
	}

	for _, p := range sel.placements {
		q.Placements = append(q.Placements, p.Code)
		q.PlacementPrice = q.PlacementPrice.Add(p.Price)
	}
	q.Total = q.TextPrice.Add(q.PlacementPrice).Add(q.FontPrice)
	return q
}
