package personalize

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

// ErrCompilation marks any unexpected failure while building a production
// record.
var ErrCompilation = errors.New("production compilation failed")

// Compile builds the production record of an intake record. Candidates that
// resolve to zero instructions are left out. The result depends only on the
// arguments; neither is modified.
func Compile(in *domain.OrderIntake, cat *domain.ShopCatalog) *domain.ProductionRecord {
	summary := in.Summary.Data()
	rec := &domain.ProductionRecord{
		OrderID:     in.OrderID,
		OrderNumber: in.OrderNumber,
		CreatedAt:   summary.CreatedAt,
		Customer: domain.ProductionCustomer{
			Email:     summary.Email,
			FirstName: summary.FirstName,
			LastName:  summary.LastName,
		},
		LineItems: []domain.ProductionLineItem{},
	}

	for _, c := range in.Candidates {
		instr := Interpret(c, cat)
		if len(instr) == 0 {
			continue
		}
		rec.LineItems = append(rec.LineItems, domain.ProductionLineItem{
			LineItemID:     c.LineItemID,
			ProductID:      c.ProductID,
			VariantID:      c.VariantID,
			SKU:            c.SKU,
			Title:          c.Title,
			Quantity:       c.Quantity,
			Customizations: instr,
		})
	}
	return rec
}

// Result is the outcome of compiling one intake record: either a production
// record or an error, never both. Catalog is the catalog a successful
// compilation used.
type Result struct {
	Production *domain.ProductionRecord
	Catalog    *domain.ShopCatalog
	Err        error
}

// OK reports whether the compilation succeeded.
func (r Result) OK() bool { return r.Err == nil && r.Production != nil }

// Succeeded wraps a production record.
func Succeeded(p *domain.ProductionRecord) Result { return Result{Production: p} }

// Failed wraps an error. Errors not already marked are wrapped with
// ErrCompilation.
func Failed(err error) Result {
	if err == nil {
		err = ErrCompilation
	} else if !errors.Is(err, ErrCompilation) {
		err = fmt.Errorf("%w: %w", ErrCompilation, err)
	}
	return Result{Err: err}
}

// SafeCompile runs Compile and converts a panic or missing input into a
// failed Result.
func SafeCompile(in *domain.OrderIntake, cat *domain.ShopCatalog) (res Result) {
	if in == nil {
		return Failed(errors.New("nil intake record"))
	}
	if cat == nil {
		return Failed(errors.New("nil catalog"))
	}
	defer func() {
		if r := recover(); r != nil {
			res = Failed(fmt.Errorf("panic: %v", r))
		}
	}()
	res = Succeeded(Compile(in, cat))
	res.Catalog = cat
	return res
}
