// Package feed converts between the desk's value types and the
// comma-delimited line formats of the input feeds and output logs.
package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"main/internal/schema"
)

var ErrMalformedRecord = errors.New("malformed feed record")

const bookLevels = 5

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}

// ParseTrade decodes a trade feed line:
// tenor,tradeId,price32,book,quantity,side.
func ParseTrade(line string, reg *schema.Registry) (schema.Trade, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return schema.Trade{}, malformed("trade wants 6 fields, got %d", len(fields))
	}
	bond, ok := reg.Bond(fields[0])
	if !ok {
		return schema.Trade{}, malformed("unknown tenor %q", fields[0])
	}
	price, err := schema.ParsePrice32(fields[2])
	if err != nil {
		return schema.Trade{}, malformed("trade price %q", fields[2])
	}
	quantity, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil || quantity <= 0 {
		return schema.Trade{}, malformed("trade quantity %q", fields[4])
	}
	side, ok := schema.SideFromString(fields[5])
	if !ok {
		return schema.Trade{}, malformed("trade side %q", fields[5])
	}
	return schema.Trade{
		Bond:     bond,
		TradeID:  fields[1],
		Price:    price,
		Book:     fields[3],
		Quantity: quantity,
		Side:     side,
	}, nil
}

// ParsePriceQuote decodes a price feed line: tenor,cusip,mid,spread
// with plain decimal prices.
func ParsePriceQuote(line string, reg *schema.Registry) (schema.PriceQuote, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return schema.PriceQuote{}, malformed("price wants 4 fields, got %d", len(fields))
	}
	bond, ok := reg.Bond(fields[0])
	if !ok {
		return schema.PriceQuote{}, malformed("unknown tenor %q", fields[0])
	}
	mid, err := schema.ParsePriceDecimal(fields[2])
	if err != nil {
		return schema.PriceQuote{}, malformed("price mid %q", fields[2])
	}
	spread, err := schema.ParsePriceDecimal(fields[3])
	if err != nil {
		return schema.PriceQuote{}, malformed("price spread %q", fields[3])
	}
	return schema.PriceQuote{Bond: bond, Mid: mid, Spread: spread}, nil
}

// ParseOrderBook decodes a market data feed line:
// tenor,marker,productId,bid1,offer1,qty1,...,bid5,offer5,qty5.
// The marker and product id fields are carried but not interpreted;
// prices are plain decimals. Exactly five levels are required.
func ParseOrderBook(line string, reg *schema.Registry) (schema.OrderBook, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3+3*bookLevels {
		return schema.OrderBook{}, malformed("market data wants %d fields, got %d", 3+3*bookLevels, len(fields))
	}
	bond, ok := reg.Bond(fields[0])
	if !ok {
		return schema.OrderBook{}, malformed("unknown tenor %q", fields[0])
	}
	book := schema.OrderBook{
		Bond:   bond,
		Bids:   make([]schema.Order, 0, bookLevels),
		Offers: make([]schema.Order, 0, bookLevels),
	}
	for level := 0; level < bookLevels; level++ {
		base := 3 + 3*level
		bid, err := schema.ParsePriceDecimal(fields[base])
		if err != nil {
			return schema.OrderBook{}, malformed("level %d bid %q", level+1, fields[base])
		}
		offer, err := schema.ParsePriceDecimal(fields[base+1])
		if err != nil {
			return schema.OrderBook{}, malformed("level %d offer %q", level+1, fields[base+1])
		}
		quantity, err := strconv.ParseInt(fields[base+2], 10, 64)
		if err != nil || quantity <= 0 {
			return schema.OrderBook{}, malformed("level %d quantity %q", level+1, fields[base+2])
		}
		book.Bids = append(book.Bids, schema.Order{Price: bid, Quantity: quantity, Side: schema.PricingSideBid})
		book.Offers = append(book.Offers, schema.Order{Price: offer, Quantity: quantity, Side: schema.PricingSideOffer})
	}
	return book, nil
}

// ParseInquiry decodes an inquiry feed line:
// inquiryId,tenor,side,quantity,price,state with a plain decimal price.
func ParseInquiry(line string, reg *schema.Registry) (schema.Inquiry, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return schema.Inquiry{}, malformed("inquiry wants 6 fields, got %d", len(fields))
	}
	bond, ok := reg.Bond(fields[1])
	if !ok {
		return schema.Inquiry{}, malformed("unknown tenor %q", fields[1])
	}
	side, ok := schema.SideFromString(fields[2])
	if !ok {
		return schema.Inquiry{}, malformed("inquiry side %q", fields[2])
	}
	quantity, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil || quantity <= 0 {
		return schema.Inquiry{}, malformed("inquiry quantity %q", fields[3])
	}
	price, err := schema.ParsePriceDecimal(fields[4])
	if err != nil {
		return schema.Inquiry{}, malformed("inquiry price %q", fields[4])
	}
	state, ok := schema.InquiryStateFromString(fields[5])
	if !ok {
		return schema.Inquiry{}, malformed("inquiry state %q", fields[5])
	}
	return schema.Inquiry{
		InquiryID: fields[0],
		Bond:      bond,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		State:     state,
	}, nil
}

// EncodePosition renders a position line:
// product,book1,qty1,...,Aggregate,total. Books appear in the given
// order; an unheld book renders as zero.
func EncodePosition(p schema.Position, books []string) string {
	var b strings.Builder
	b.WriteString(p.Bond.Tenor)
	for _, book := range books {
		fmt.Fprintf(&b, ",%s,%d", book, p.Quantity(book))
	}
	fmt.Fprintf(&b, ",Aggregate,%d", p.AggregateQuantity())
	return b.String()
}

// EncodeRisk renders a risk line: product,pv01,quantity.
func EncodeRisk(v schema.PV01) string {
	return fmt.Sprintf("%s,%s,%d", v.Bond.Tenor, v.Value.String(), v.Quantity)
}

// EncodeExecution renders an execution line with the 32nds price.
func EncodeExecution(o schema.ExecutionOrder) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%d,%d,%s,%t",
		o.Bond.Tenor, o.OrderID, o.Side, o.Type, o.Price,
		o.VisibleQuantity, o.HiddenQuantity, o.ParentOrderID, o.IsChildOrder)
}

// EncodeGUIQuote renders a display line: product,bid,offer,epochMillis
// with plain decimal prices.
func EncodeGUIQuote(q schema.GUIQuote) string {
	return fmt.Sprintf("%s,%s,%s,%d",
		q.Bond.Tenor, q.Bid.Decimal().String(), q.Offer.Decimal().String(), q.CapturedAt)
}

// EncodePriceStream renders a streaming line: product, then price and
// sizes per side.
func EncodePriceStream(ps schema.PriceStream) string {
	return fmt.Sprintf("%s,%s,%d,%d,%s,%d,%d",
		ps.Bond.Tenor,
		ps.Bid.Price.Decimal().String(), ps.Bid.VisibleQuantity, ps.Bid.HiddenQuantity,
		ps.Offer.Price.Decimal().String(), ps.Offer.VisibleQuantity, ps.Offer.HiddenQuantity)
}

// EncodeInquiry renders an inquiry line:
// inquiryId,product,side,quantity,price,state.
func EncodeInquiry(inq schema.Inquiry) string {
	return fmt.Sprintf("%s,%s,%s,%d,%s,%s",
		inq.InquiryID, inq.Bond.Tenor, inq.Side, inq.Quantity,
		inq.Price.Decimal().String(), inq.State)
}
