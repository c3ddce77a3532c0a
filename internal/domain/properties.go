package domain

import "encoding/json"

// Recognized line-item property names written by the storefront widget.
const (
	PropCustomText    = "Custom Text"
	PropPlayerName    = "Player Name"
	PropJerseyNumber  = "Jersey Number"
	PropCustomMessage = "Custom Message"
	PropPlacement     = "Placement"
	PropFontStyle     = "Font Style"
)

// TextSourceKeys lists the properties that may carry the customization text,
// in priority order. The first non-empty one wins.
var TextSourceKeys = []string{PropCustomText, PropPlayerName, PropJerseyNumber, PropCustomMessage}

// Properties is the typed view of a line item's name/value property bag.
// Recognized keys are held as optional strings; anything else lands in Extra,
// which is kept for round-tripping but never consulted by the pipeline.
type Properties struct {
	CustomText    *string
	PlayerName    *string
	JerseyNumber  *string
	CustomMessage *string
	Placement     *string
	FontStyle     *string

	Extra map[string]string
}

func (p *Properties) slot(name string) **string {
	switch name {
	case PropCustomText:
		return &p.CustomText
	case PropPlayerName:
		return &p.PlayerName
	case PropJerseyNumber:
		return &p.JerseyNumber
	case PropCustomMessage:
		return &p.CustomMessage
	case PropPlacement:
		return &p.Placement
	case PropFontStyle:
		return &p.FontStyle
	}
	return nil
}

// Set stores value under name. Names are matched exactly; a later Set for the
// same name overwrites the earlier one.
func (p *Properties) Set(name, value string) {
	if s := p.slot(name); s != nil {
		v := value
		*s = &v
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[name] = value
}

// Get returns the value stored under name and whether it was present.
func (p Properties) Get(name string) (string, bool) {
	if s := p.slot(name); s != nil {
		if *s == nil {
			return "", false
		}
		return **s, true
	}
	v, ok := p.Extra[name]
	return v, ok
}

// Value returns the value under name, or "" when absent.
func (p Properties) Value(name string) string {
	v, _ := p.Get(name)
	return v
}

// Text returns the customization text: the first non-empty value among
// TextSourceKeys.
func (p Properties) Text() (string, bool) {
	_, v, ok := p.TextSource()
	return v, ok
}

// TextSource is Text plus the property name the text was read from.
func (p Properties) TextSource() (key, value string, ok bool) {
	for _, k := range TextSourceKeys {
		if v := p.Value(k); v != "" {
			return k, v, true
		}
	}
	return "", "", false
}

// Len reports the number of stored properties.
func (p Properties) Len() int {
	n := len(p.Extra)
	for _, s := range []*string{p.CustomText, p.PlayerName, p.JerseyNumber, p.CustomMessage, p.Placement, p.FontStyle} {
		if s != nil {
			n++
		}
	}
	return n
}

// Map flattens the properties back into a name/value map.
func (p Properties) Map() map[string]string {
	out := make(map[string]string, p.Len())
	for k, v := range p.Extra {
		out[k] = v
	}
	for _, k := range []string{PropCustomText, PropPlayerName, PropJerseyNumber, PropCustomMessage, PropPlacement, PropFontStyle} {
		if v, ok := p.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// PropertiesFromMap builds typed properties from a flat map.
func PropertiesFromMap(m map[string]string) Properties {
	var p Properties
	for k, v := range m {
		p.Set(k, v)
	}
	return p
}

// MarshalJSON encodes the properties as the flat object stored in intake rows.
func (p Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// UnmarshalJSON decodes a flat name/value object.
func (p *Properties) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*p = PropertiesFromMap(m)
	return nil
}
