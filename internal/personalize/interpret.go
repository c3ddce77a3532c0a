package personalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// MatchExact returns the first item whose key equals want. Comparison is
// byte-for-byte: no case folding, no trimming.
func MatchExact[T any](items []T, key func(T) string, want string) (T, bool) {
	for _, it := range items {
		if key(it) == want {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// MatchFont resolves a "Font Style" label against the catalog fonts.
func MatchFont(fonts []domain.Font, label string) (domain.Font, bool) {
	return MatchExact(fonts, func(f domain.Font) string { return f.DisplayLabel }, label)
}

// MatchPlacement resolves a placement name against the catalog placements.
func MatchPlacement(placements []domain.Placement, name string) (domain.Placement, bool) {
	return MatchExact(placements, func(p domain.Placement) string { return p.Name }, name)
}

// selection is a candidate's request resolved against a catalog.
type selection struct {
	textKey    string
	text       string
	font       domain.Font
	fontCode   string
	placements []domain.Placement
}

// splitPlacements splits a "Placement" value on commas and trims each name.
// Empty names are dropped.
func splitPlacements(v string) []string {
	var out []string
	for _, n := range strings.Split(v, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// resolveFont picks the font for label, falling back to the first catalog
// font. With no fonts at all the code is domain.FallbackFont.
func resolveFont(fonts []domain.Font, label string) (domain.Font, string) {
	if f, ok := MatchFont(fonts, label); ok {
		return f, f.Code
	}
	if len(fonts) > 0 {
		return fonts[0], fonts[0].Code
	}
	return domain.Font{}, domain.FallbackFont
}

func resolve(props domain.Properties, cat *domain.ShopCatalog) (selection, bool) {
	key, text, ok := props.TextSource()
	if !ok {
		return selection{}, false
	}
	names := splitPlacements(props.Value(domain.PropPlacement))
	if len(names) == 0 {
		return selection{}, false
	}

	label := props.Value(domain.PropFontStyle)
	if label == "" {
		label = domain.DefaultFontLabel
	}

	var fonts []domain.Font
	var placements []domain.Placement
	if cat != nil {
		fonts, placements = cat.Fonts, cat.Placements
	}

	sel := selection{textKey: key, text: text}
	sel.font, sel.fontCode = resolveFont(fonts, label)
	for _, n := range names {
		if p, ok := MatchPlacement(placements, n); ok {
			sel.placements = append(sel.placements, p)
		}
	}
	return sel, true
}

// upper uppercases s without locale-specific rules. A Caser keeps state, so
// one is built per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Interpret resolves one candidate into print instructions, one per matched
// placement in request order. It returns nil when the candidate has no text,
// no placement, or no placement name that exists in the catalog.
func Interpret(c domain.Candidate, cat *domain.ShopCatalog) []domain.Instruction {
	sel, ok := resolve(c.Properties, cat)
	if !ok || len(sel.placements) == 0 {
		return nil
	}

	value := upper(sel.text)
	out := make([]domain.Instruction, 0, len(sel.placements))
	for _, p := range sel.placements {
		out = append(out, domain.Instruction{
			Type:      domain.InstructionText,
			Value:     value,
			Placement: p.Code,
			Font:      sel.fontCode,
			Color:     domain.ColorWhite,
			Geometry:  cloneGeometry(p.Geometry),
		})
	}
	return out
}

func cloneGeometry(g domain.Geometry) domain.Geometry {
	if g.Rotation != nil {
		r := *g.Rotation
		g.Rotation = &r
	}
	return g
}
