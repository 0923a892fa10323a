package schema

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bond is immutable reference data for a single treasury issue.
type Bond struct {
	Tenor    string
	CUSIP    string
	Issuer   string
	Coupon   decimal.Decimal
	Maturity time.Time
}

// Registry stores bond reference data and per-unit PV01 keyed by tenor.
type Registry struct {
	bonds   []Bond
	byTenor map[string]int
	pv01    map[string]decimal.Decimal
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byTenor: make(map[string]int),
		pv01:    make(map[string]decimal.Decimal),
	}
}

// AddBond registers a bond and its per-unit PV01 under its tenor.
func (r *Registry) AddBond(bond Bond, pv01 decimal.Decimal) error {
	if bond.Tenor == "" {
		return fmt.Errorf("bond tenor is empty")
	}
	if bond.CUSIP == "" {
		return fmt.Errorf("bond cusip is empty: %s", bond.Tenor)
	}
	if _, ok := r.byTenor[bond.Tenor]; ok {
		return fmt.Errorf("tenor already exists: %s", bond.Tenor)
	}
	if pv01.Sign() <= 0 {
		return fmt.Errorf("pv01 must be > 0 for %s", bond.Tenor)
	}
	r.byTenor[bond.Tenor] = len(r.bonds)
	r.bonds = append(r.bonds, bond)
	r.pv01[bond.Tenor] = pv01
	return nil
}

// Bond returns the reference data for a tenor.
func (r *Registry) Bond(tenor string) (Bond, bool) {
	idx, ok := r.byTenor[tenor]
	if !ok {
		return Bond{}, false
	}
	return r.bonds[idx], true
}

// PV01PerUnit returns the per-unit PV01 for a tenor.
func (r *Registry) PV01PerUnit(tenor string) (decimal.Decimal, bool) {
	v, ok := r.pv01[tenor]
	return v, ok
}

// Count returns the number of registered bonds.
func (r *Registry) Count() int {
	return len(r.bonds)
}

// At returns the bond by zero-based registration index.
func (r *Registry) At(index int) (Bond, bool) {
	if index < 0 || index >= len(r.bonds) {
		return Bond{}, false
	}
	return r.bonds[index], true
}

// Tenors returns the tenors in registration order.
func (r *Registry) Tenors() []string {
	out := make([]string, len(r.bonds))
	for i, b := range r.bonds {
		out[i] = b.Tenor
	}
	return out
}

// defaultPV01 is the per-unit PV01 applied to every tenor unless
// overridden by configuration.
var defaultPV01 = decimal.New(21, -4)

// DefaultRegistry returns the on-the-run treasury curve the desk trades.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	coupon := func(bps int64) decimal.Decimal { return decimal.New(bps, -4) }
	bonds := []Bond{
		{Tenor: "2Y", CUSIP: "912828F62", Issuer: "T", Coupon: coupon(150), Maturity: time.Date(2019, time.October, 31, 0, 0, 0, 0, time.UTC)},
		{Tenor: "3Y", CUSIP: "9128283G3", Issuer: "T", Coupon: coupon(175), Maturity: time.Date(2020, time.November, 15, 0, 0, 0, 0, time.UTC)},
		{Tenor: "5Y", CUSIP: "9128283C2", Issuer: "T", Coupon: coupon(200), Maturity: time.Date(2022, time.October, 31, 0, 0, 0, 0, time.UTC)},
		{Tenor: "7Y", CUSIP: "9128283D0", Issuer: "T", Coupon: coupon(225), Maturity: time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC)},
		{Tenor: "10Y", CUSIP: "9128283F5", Issuer: "T", Coupon: coupon(225), Maturity: time.Date(2027, time.November, 15, 0, 0, 0, 0, time.UTC)},
		{Tenor: "30Y", CUSIP: "912810RZ3", Issuer: "T", Coupon: coupon(275), Maturity: time.Date(2047, time.November, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, b := range bonds {
		if err := reg.AddBond(b, defaultPV01); err != nil {
			panic(err)
		}
	}
	return reg
}
