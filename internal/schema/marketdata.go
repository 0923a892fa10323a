package schema

// Order is one level of an order book stack.
type Order struct {
	Price    Price
	Quantity int64
	Side     PricingSide
}

// OrderBook holds index-paired bid and offer stacks for one bond.
// Level i of the bid stack corresponds to level i of the offer stack;
// both stacks are expected to have the same length.
type OrderBook struct {
	Bond   Bond
	Bids   []Order
	Offers []Order
}

// Depth returns the number of paired levels in the book.
func (b OrderBook) Depth() int {
	if len(b.Bids) < len(b.Offers) {
		return len(b.Bids)
	}
	return len(b.Offers)
}
