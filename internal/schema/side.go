package schema

// Side describes trade direction.
type Side uint16

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

// String returns the feed representation of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// SideFromString parses a feed side token.
func SideFromString(s string) (Side, bool) {
	switch s {
	case "BUY":
		return SideBuy, true
	case "SELL":
		return SideSell, true
	default:
		return SideUnknown, false
	}
}

// PricingSide describes which side of the book a quote or leg sits on.
type PricingSide uint16

const (
	PricingSideUnknown PricingSide = iota
	PricingSideBid
	PricingSideOffer
)

// String returns the pricing side name.
func (s PricingSide) String() string {
	switch s {
	case PricingSideBid:
		return "BID"
	case PricingSideOffer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// OrderType describes execution order type.
type OrderType uint16

const (
	OrderTypeUnknown OrderType = iota
	OrderTypeFOK
	OrderTypeIOC
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStop
)

// String returns the order type name.
func (t OrderType) String() string {
	switch t {
	case OrderTypeFOK:
		return "FOK"
	case OrderTypeIOC:
		return "IOC"
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Market identifies an execution venue.
type Market uint16

const (
	MarketUnknown Market = iota
	MarketBrokerTec
	MarketESpeed
	MarketCME
)

// String returns the market name.
func (m Market) String() string {
	switch m {
	case MarketBrokerTec:
		return "BROKERTEC"
	case MarketESpeed:
		return "ESPEED"
	case MarketCME:
		return "CME"
	default:
		return "UNKNOWN"
	}
}
