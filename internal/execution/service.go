package execution

import (
	"fmt"

	"main/internal/bus"
	"main/internal/schema"
)

// Service executes routed orders against a venue. Each executed order
// is converted to a trade against a router-assigned settlement book and
// the order itself is fanned out to execution subscribers.
type Service struct {
	store  *bus.Store[schema.ExecutionOrder]
	trades map[string]schema.Trade
	router BookRouter
}

// NewService creates an execution service with the given book router.
func NewService(d *bus.Dispatcher, router BookRouter) *Service {
	return &Service{
		store:  bus.NewStore(d, func(o schema.ExecutionOrder) string { return o.OrderID }),
		trades: make(map[string]schema.Trade),
		router: router,
	}
}

// ExecuteOrder fills the order on the given market. The trade direction
// follows the sign of the visible quantity: a negative leg sells.
func (s *Service) ExecuteOrder(order schema.ExecutionOrder, market schema.Market) error {
	side := schema.SideBuy
	quantity := order.VisibleQuantity
	if quantity < 0 {
		side = schema.SideSell
		quantity = -quantity
	}
	s.trades[order.OrderID] = schema.Trade{
		Bond:     order.Bond,
		TradeID:  order.OrderID,
		Price:    order.Price,
		Book:     s.router.RouteBook(),
		Quantity: quantity,
		Side:     side,
	}
	return s.store.Ingest(order)
}

// Trade returns the booked trade for an executed order id.
func (s *Service) Trade(orderID string) (schema.Trade, error) {
	t, ok := s.trades[orderID]
	if !ok {
		var zero schema.Trade
		return zero, fmt.Errorf("%w: %s", bus.ErrNotFound, orderID)
	}
	return t, nil
}

// Order returns a stored executed order by id.
func (s *Service) Order(id string) (schema.ExecutionOrder, error) {
	return s.store.Get(id)
}

// Subscribe registers a listener for executed orders.
func (s *Service) Subscribe(l bus.Listener[schema.ExecutionOrder]) {
	s.store.Subscribe(l)
}
