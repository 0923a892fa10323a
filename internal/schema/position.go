package schema

import "github.com/shopspring/decimal"

// Position tracks signed net quantity per settlement book for one bond.
type Position struct {
	Bond  Bond
	Books map[string]int64
}

// NewPosition creates an empty position for a bond.
func NewPosition(bond Bond) Position {
	return Position{Bond: bond, Books: make(map[string]int64)}
}

// Quantity returns the signed net quantity held in one book.
func (p Position) Quantity(book string) int64 {
	return p.Books[book]
}

// AggregateQuantity returns the signed net quantity across all books.
func (p Position) AggregateQuantity() int64 {
	var total int64
	for _, qty := range p.Books {
		total += qty
	}
	return total
}

// WithBookDelta returns a copy of the position with the delta applied
// to the named book. The receiver is left untouched so stored values
// never leak mutable state across the listener boundary.
func (p Position) WithBookDelta(book string, delta int64) Position {
	next := Position{Bond: p.Bond, Books: make(map[string]int64, len(p.Books)+1)}
	for name, qty := range p.Books {
		next.Books[name] = qty
	}
	next.Books[book] += delta
	return next
}

// PV01 is the stored risk entry for one bond: per-position dollar value
// of a one-basis-point yield move, with the quantity it was computed from.
type PV01 struct {
	Bond     Bond
	Value    decimal.Decimal
	Quantity int64
}

// BucketedSector names a group of bonds for aggregate risk queries.
// It is a query parameter, never persisted.
type BucketedSector struct {
	Name  string
	Bonds []Bond
}

// BucketRisk is the aggregate result for a bucketed sector: the
// risk-weighted PV01 and the total quantity of the constituents.
type BucketRisk struct {
	Name     string
	Value    decimal.Decimal
	Quantity int64
}
