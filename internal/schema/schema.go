/*
Schema defines the shared domain model of the trading desk pipeline.

# Module
  - fixed-point bond prices in 1/256ths of a point with 32nds notation codec
  - static bond reference data keyed by tenor (registry)
  - value types passed between services: order books, execution orders,
    trades, positions, PV01 entries, price streams, inquiries

# Consumers
 1. every service under internal/
 2. feed line codecs
 3. historical data publishers
*/
package schema

// EventKind classifies a pipeline event for counting purposes.
type EventKind uint16

const (
	EventUnknown EventKind = iota
	EventOrderBook
	EventExecution
	EventTrade
	EventPosition
	EventRisk
	EventPrice
	EventPriceStream
	EventQuote
	EventInquiry
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventOrderBook:
		return "order_book"
	case EventExecution:
		return "execution"
	case EventTrade:
		return "trade"
	case EventPosition:
		return "position"
	case EventRisk:
		return "risk"
	case EventPrice:
		return "price"
	case EventPriceStream:
		return "price_stream"
	case EventQuote:
		return "quote"
	case EventInquiry:
		return "inquiry"
	default:
		return "unknown"
	}
}
