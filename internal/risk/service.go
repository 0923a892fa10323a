// Package risk converts net positions into PV01 risk entries and
// answers bucketed sector queries over them.
package risk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"main/internal/bus"
	"main/internal/schema"
)

var (
	ErrUnknownBond = errors.New("bond has no pv01 reference data")
	ErrEmptyBucket = errors.New("bucket has zero aggregate quantity")
)

// Service stores one PV01 entry per bond, keyed by tenor. Each position
// update replaces the entry; risk is recomputed from scratch, never
// accumulated.
type Service struct {
	store    *bus.Store[schema.PV01]
	registry *schema.Registry
}

// NewService creates a risk service over the given reference data.
func NewService(d *bus.Dispatcher, registry *schema.Registry) *Service {
	return &Service{
		store:    bus.NewStore(d, func(v schema.PV01) string { return v.Bond.Tenor }),
		registry: registry,
	}
}

// AddPosition recomputes the bond's PV01 from its aggregate quantity
// and replaces the stored entry.
func (s *Service) AddPosition(position schema.Position) error {
	perUnit, ok := s.registry.PV01PerUnit(position.Bond.Tenor)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBond, position.Bond.Tenor)
	}
	quantity := position.AggregateQuantity()
	return s.store.Ingest(schema.PV01{
		Bond:     position.Bond,
		Value:    perUnit.Mul(decimal.NewFromInt(quantity)),
		Quantity: quantity,
	})
}

// Risk returns the stored PV01 entry for a tenor.
func (s *Service) Risk(tenor string) (schema.PV01, error) {
	return s.store.Get(tenor)
}

// BucketedRisk aggregates the sector's constituents into a single
// quantity-weighted per-unit PV01. Every constituent must have a stored
// entry. A bucket whose total quantity nets to zero has no well-defined
// weighted risk and returns ErrEmptyBucket.
func (s *Service) BucketedRisk(sector schema.BucketedSector) (schema.BucketRisk, error) {
	weighted := decimal.Zero
	var quantity int64
	for _, bond := range sector.Bonds {
		entry, err := s.store.Get(bond.Tenor)
		if err != nil {
			return schema.BucketRisk{}, err
		}
		weighted = weighted.Add(entry.Value)
		quantity += entry.Quantity
	}
	if quantity == 0 {
		return schema.BucketRisk{}, fmt.Errorf("%w: %s", ErrEmptyBucket, sector.Name)
	}
	return schema.BucketRisk{
		Name:     sector.Name,
		Value:    weighted.Div(decimal.NewFromInt(quantity)),
		Quantity: quantity,
	}, nil
}

// Subscribe registers a listener for PV01 updates.
func (s *Service) Subscribe(l bus.Listener[schema.PV01]) {
	s.store.Subscribe(l)
}
