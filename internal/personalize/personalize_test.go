package personalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

func candidate(props map[string]string) domain.Candidate {
	return domain.Candidate{LineItemID: 1, ProductID: 2, VariantID: 3, SKU: "TEE", Title: "Tee", Quantity: 1,
		Properties: domain.PropertiesFromMap(props)}
}

func mustOrder(t *testing.T, raw string) *domain.OrderPayload {
	t.Helper()
	var o domain.OrderPayload
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return &o
}

func TestExtractCandidates_FiltersAndPreservesOrder(t *testing.T) {
	o := mustOrder(t, `{"id":1,"name":"#1","line_items":[
		{"id":10,"title":"plain"},
		{"id":11,"title":"A","properties":[{"name":"Player Name","value":"SMITH"},{"name":"Placement","value":"Back"}]},
		{"id":12,"title":"note only","properties":[{"name":"Gift Note","value":"hi"}]},
		{"id":13,"title":"empty trigger","properties":[{"name":"Custom Text","value":""}]},
		{"id":14,"title":"B","properties":[{"name":"Custom Message","value":"GO"}]}
	]}`)

	got := ExtractCandidates(o)
	if len(got) != 2 {
		t.Fatalf("want 2 candidates, got %d", len(got))
	}
	if got[0].LineItemID != 11 || got[1].LineItemID != 14 {
		t.Fatalf("order not preserved: %d, %d", got[0].LineItemID, got[1].LineItemID)
	}
	if got[0].Properties.Value(domain.PropPlacement) != "Back" {
		t.Fatalf("full property map must be carried")
	}
}

func TestExtractCandidates_DuplicateNamesLastWins(t *testing.T) {
	o := mustOrder(t, `{"id":1,"name":"#1","line_items":[
		{"id":1,"properties":[{"name":"Custom Text","value":"first"},{"name":"Custom Text","value":"second"}]}
	]}`)
	got := ExtractCandidates(o)
	if len(got) != 1 || got[0].Properties.Value(domain.PropCustomText) != "second" {
		t.Fatalf("want last value, got %+v", got)
	}

	// A later empty duplicate clears the trigger.
	o = mustOrder(t, `{"id":1,"name":"#1","line_items":[
		{"id":1,"properties":[{"name":"Custom Text","value":"x"},{"name":"Custom Text","value":""}]}
	]}`)
	if got := ExtractCandidates(o); len(got) != 0 {
		t.Fatalf("want no candidates, got %d", len(got))
	}
}

func TestExtractCandidates_NilAndEmpty(t *testing.T) {
	if ExtractCandidates(nil) != nil {
		t.Fatalf("nil order should yield nil")
	}
	if got := ExtractCandidates(mustOrder(t, `{"id":1,"name":"#1","line_items":[]}`)); len(got) != 0 {
		t.Fatalf("want none, got %d", len(got))
	}
}

func TestInterpret_TwoPlacements(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	got := Interpret(candidate(map[string]string{"Player Name": "SMITH", "Placement": "Chest, Back"}), cat)

	if len(got) != 2 {
		t.Fatalf("want 2 instructions, got %d", len(got))
	}
	want := []struct{ placement string }{{"chest"}, {"back"}}
	for i, w := range want {
		in := got[i]
		if in.Type != "text" || in.Value != "SMITH" || in.Placement != w.placement || in.Font != "standard" || in.Color != "white" {
			t.Fatalf("instruction[%d] = %+v", i, in)
		}
		if in.Geometry != cat.Placements[i].Geometry {
			t.Fatalf("instruction[%d] geometry = %+v", i, in.Geometry)
		}
	}
}

func TestInterpret_NoPlacement(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	if got := Interpret(candidate(map[string]string{"Custom Text": "hi"}), cat); len(got) != 0 {
		t.Fatalf("want empty, got %+v", got)
	}
	if got := Interpret(candidate(map[string]string{"Custom Text": "hi", "Placement": " , "}), cat); len(got) != 0 {
		t.Fatalf("blank placement list should yield nothing, got %+v", got)
	}
}

func TestInterpret_UnknownPlacementSkipped(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	got := Interpret(candidate(map[string]string{"Custom Text": "go", "Placement": "Collar,Left Sleeve"}), cat)
	if len(got) != 1 || got[0].Placement != "left_sleeve" {
		t.Fatalf("want only left_sleeve, got %+v", got)
	}
	if got[0].Value != "GO" {
		t.Fatalf("value should be uppercased: %q", got[0].Value)
	}
	if r := got[0].Geometry.Rotation; r == nil || *r != -90 {
		t.Fatalf("rotation should carry over: %v", r)
	}

	// Returned geometry must not alias the catalog.
	*got[0].Geometry.Rotation = 5
	if *cat.Placements[2].Geometry.Rotation != -90 {
		t.Fatalf("catalog mutated through instruction geometry")
	}
}

func TestInterpret_StrictMatching(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	if got := Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "chest"}), cat); len(got) != 0 {
		t.Fatalf("placement match must be case-sensitive, got %+v", got)
	}

	got := Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Back", "Font Style": "varsity style (+$3)"}), cat)
	if len(got) != 1 || got[0].Font != "standard" {
		t.Fatalf("unmatched font label should fall back to first font, got %+v", got)
	}
}

func TestInterpret_FontResolution(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	got := Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Back", "Font Style": "Script Style (+$5)"}), cat)
	if len(got) != 1 || got[0].Font != "script" {
		t.Fatalf("want script, got %+v", got)
	}

	cat.Fonts = datatypes.JSONSlice[domain.Font]{}
	got = Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Back"}), cat)
	if len(got) != 1 || got[0].Font != "standard" {
		t.Fatalf("zero fonts should yield literal standard, got %+v", got)
	}

	cat.Fonts = datatypes.JSONSlice[domain.Font]{{ID: 9, Code: "block", DisplayLabel: "Block"}}
	got = Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Back"}), cat)
	if len(got) != 1 || got[0].Font != "block" {
		t.Fatalf("default label missing should fall back to first font, got %+v", got)
	}
}

func TestInterpret_EmptyCatalog(t *testing.T) {
	cat := &domain.ShopCatalog{ShopDomain: "s"}
	if got := Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Chest"}), cat); len(got) != 0 {
		t.Fatalf("empty catalog should match nothing, got %+v", got)
	}
	if got := Interpret(candidate(map[string]string{"Custom Text": "x", "Placement": "Chest"}), nil); len(got) != 0 {
		t.Fatalf("nil catalog should match nothing, got %+v", got)
	}
}

func TestInterpret_UppercaseUnicode(t *testing.T) {
	got := Interpret(candidate(map[string]string{"Custom Text": "straße", "Placement": "Chest"}), domain.DefaultCatalog("s"))
	if len(got) != 1 || got[0].Value != "STRASSE" {
		t.Fatalf("got %+v", got)
	}
}

func intake(cands ...domain.Candidate) *domain.OrderIntake {
	return &domain.OrderIntake{
		ID: "i1", ShopDomain: "s", OrderID: 5001, OrderNumber: "#1001",
		Summary: datatypes.NewJSONType(domain.OrderSummary{
			Email: "a@b.c", FirstName: "Ann", LastName: "Lee", CreatedAt: "2024-03-01T10:00:00Z",
		}),
		Candidates: datatypes.NewJSONSlice(cands),
		Status:     domain.IntakeProcessing,
	}
}

func TestCompile_OmitsEmptyAndIsDeterministic(t *testing.T) {
	a := candidate(map[string]string{"Player Name": "smith", "Placement": "Chest, Back", "Font Style": "Varsity Style (+$3)"})
	b := candidate(map[string]string{"Custom Text": "x", "Placement": "Collar"})
	b.LineItemID = 2
	in := intake(a, b)
	cat := domain.DefaultCatalog("s")

	rec := Compile(in, cat)
	if rec.OrderID != 5001 || rec.OrderNumber != "#1001" || rec.CreatedAt != "2024-03-01T10:00:00Z" {
		t.Fatalf("header = %+v", rec)
	}
	if rec.Customer.Email != "a@b.c" || rec.Customer.FirstName != "Ann" || rec.Customer.LastName != "Lee" {
		t.Fatalf("customer = %+v", rec.Customer)
	}
	if len(rec.LineItems) != 1 || rec.LineItems[0].LineItemID != 1 || len(rec.LineItems[0].Customizations) != 2 {
		t.Fatalf("line items = %+v", rec.LineItems)
	}
	if rec.LineItems[0].Customizations[0].Font != "varsity" {
		t.Fatalf("font = %q", rec.LineItems[0].Customizations[0].Font)
	}

	first, _ := json.Marshal(Compile(in, cat))
	second, _ := json.Marshal(Compile(in, cat))
	if !bytes.Equal(first, second) {
		t.Fatalf("compile not deterministic:\n%s\n%s", first, second)
	}
	if in.Candidates[0].Properties.Value(domain.PropPlayerName) != "smith" {
		t.Fatalf("input mutated")
	}
}

func TestCompile_NoMatchesYieldsEmptyList(t *testing.T) {
	rec := Compile(intake(candidate(map[string]string{"Custom Text": "x"})), domain.DefaultCatalog("s"))
	b, _ := json.Marshal(rec.LineItems)
	if string(b) != "[]" {
		t.Fatalf("line items json = %s", b)
	}
}

func TestSafeCompile_Results(t *testing.T) {
	ok := SafeCompile(intake(candidate(map[string]string{"Custom Text": "x", "Placement": "Back"})), domain.DefaultCatalog("s"))
	if !ok.OK() || ok.Production == nil {
		t.Fatalf("want success, got %+v", ok)
	}
	if ok.Catalog == nil || len(ok.Catalog.Placements) != 4 {
		t.Fatalf("success must carry the catalog it used, got %+v", ok.Catalog)
	}

	r := SafeCompile(intake(), nil)
	if r.OK() || !errors.Is(r.Err, ErrCompilation) {
		t.Fatalf("nil catalog should fail with ErrCompilation, got %v", r.Err)
	}

	r = SafeCompile(nil, domain.DefaultCatalog("s"))
	if r.OK() || !errors.Is(r.Err, ErrCompilation) {
		t.Fatalf("nil intake should fail with ErrCompilation, got %v", r.Err)
	}
}

func TestFailed_WrapsOnce(t *testing.T) {
	base := errors.New("boom")
	r := Failed(base)
	if !errors.Is(r.Err, ErrCompilation) || !errors.Is(r.Err, base) {
		t.Fatalf("err = %v", r.Err)
	}
	again := Failed(r.Err)
	if again.Err != r.Err {
		t.Fatalf("already-marked errors should pass through")
	}
	if !errors.Is(Failed(nil).Err, ErrCompilation) {
		t.Fatalf("nil error should become ErrCompilation")
	}
}

func TestQuoteFor(t *testing.T) {
	cat := domain.DefaultCatalog("s")
	q := QuoteFor(domain.PropertiesFromMap(map[string]string{
		"Player Name": "smith", "Placement": "Chest, Left Sleeve, Collar", "Font Style": "Script Style (+$5)",
	}), cat)

	if !q.Priced() || q.Text != "SMITH" || q.TextOption != "Player Name" || q.MaxLength != 15 || q.TooLong {
		t.Fatalf("quote = %+v", q)
	}
	if len(q.Placements) != 2 || q.Placements[0] != "chest" || q.Placements[1] != "left_sleeve" {
		t.Fatalf("placements = %v", q.Placements)
	}
	if !q.PlacementPrice.Equal(decimal.NewFromInt(12)) || !q.FontPrice.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("prices = %s / %s", q.PlacementPrice, q.FontPrice)
	}
	if !q.Total.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("total = %s", q.Total)
	}

	long := QuoteFor(domain.PropertiesFromMap(map[string]string{"Jersey Number": "1234", "Placement": "Back"}), cat)
	if !long.TooLong || long.MaxLength != 3 {
		t.Fatalf("jersey number over 3 chars should be flagged: %+v", long)
	}

	none := QuoteFor(domain.PropertiesFromMap(map[string]string{"Custom Text": "x"}), cat)
	if none.Priced() || !none.Total.IsZero() {
		t.Fatalf("unplaced request should quote zero: %+v", none)
	}
	b, _ := json.Marshal(none)
	if !bytes.Contains(b, []byte(`"placements":[]`)) || !bytes.Contains(b, []byte(`"total":0`)) {
		t.Fatalf("json = %s", b)
	}
}

func TestMatchExact(t *testing.T) {
	items := []string{"a", "B", "a"}
	if got, ok := MatchExact(items, func(s string) string { return s }, "a"); !ok || got != "a" {
		t.Fatalf("got %q,%v", got, ok)
	}
	if _, ok := MatchExact(items, func(s string) string { return s }, "b"); ok {
		t.Fatalf("must be case-sensitive")
	}
	if _, ok := MatchExact(items, func(s string) string { return s }, " a"); ok {
		t.Fatalf("must not trim")
	}
}
