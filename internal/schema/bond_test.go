package schema

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if reg.Count() != 6 {
		t.Fatalf("bond count: got %d want 6", reg.Count())
	}
	bond, ok := reg.Bond("10Y")
	if !ok {
		t.Fatal("10Y missing")
	}
	if bond.CUSIP != "9128283F5" || bond.Issuer != "T" {
		t.Fatalf("unexpected 10Y reference data: %+v", bond)
	}
	pv01, ok := reg.PV01PerUnit("30Y")
	if !ok {
		t.Fatal("30Y pv01 missing")
	}
	if !pv01.Equal(decimal.RequireFromString("0.0021")) {
		t.Fatalf("30Y pv01: got %s", pv01)
	}
	tenors := reg.Tenors()
	if len(tenors) != 6 || tenors[0] != "2Y" || tenors[5] != "30Y" {
		t.Fatalf("tenor order: %v", tenors)
	}
}

func TestRegistryAddBondRejects(t *testing.T) {
	reg := NewRegistry()
	pv01 := decimal.New(21, -4)
	if err := reg.AddBond(Bond{CUSIP: "X"}, pv01); err == nil {
		t.Fatal("empty tenor should fail")
	}
	if err := reg.AddBond(Bond{Tenor: "2Y"}, pv01); err == nil {
		t.Fatal("empty cusip should fail")
	}
	if err := reg.AddBond(Bond{Tenor: "2Y", CUSIP: "X"}, decimal.Zero); err == nil {
		t.Fatal("zero pv01 should fail")
	}
	if err := reg.AddBond(Bond{Tenor: "2Y", CUSIP: "X"}, pv01); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := reg.AddBond(Bond{Tenor: "2Y", CUSIP: "Y"}, pv01); err == nil {
		t.Fatal("duplicate tenor should fail")
	}
}

func TestPositionWithBookDelta(t *testing.T) {
	reg := DefaultRegistry()
	bond, _ := reg.Bond("2Y")
	base := NewPosition(bond)
	next := base.WithBookDelta("TRSY1", 1_000_000)
	if base.Quantity("TRSY1") != 0 {
		t.Fatal("receiver mutated")
	}
	next = next.WithBookDelta("TRSY2", -400_000)
	if next.Quantity("TRSY1") != 1_000_000 || next.Quantity("TRSY2") != -400_000 {
		t.Fatalf("book quantities: %+v", next.Books)
	}
	if next.AggregateQuantity() != 600_000 {
		t.Fatalf("aggregate: got %d", next.AggregateQuantity())
	}
}
