package schema

// ExecutionOrder is one leg of a best-execution match.
// The sign of VisibleQuantity encodes direction: negative is a sell leg.
type ExecutionOrder struct {
	Bond            Bond
	Side            PricingSide
	OrderID         string
	Type            OrderType
	Price           Price
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChildOrder    bool
}

// Trade is a booked execution against a settlement book.
// Quantity is always positive; direction is carried by Side.
type Trade struct {
	Bond     Bond
	TradeID  string
	Price    Price
	Book     string
	Quantity int64
	Side     Side
}

// SignedQuantity returns the trade quantity signed by side.
func (t Trade) SignedQuantity() int64 {
	if t.Side == SideSell {
		return -t.Quantity
	}
	return t.Quantity
}
