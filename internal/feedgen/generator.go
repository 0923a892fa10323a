// Package feedgen creates synthetic input feeds for the desk: trades,
// market data, prices and inquiries, deterministic for a given seed.
package feedgen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"main/internal/schema"
)

// Input feed file names.
const (
	TradesFile     = "trades.txt"
	MarketDataFile = "marketdata.txt"
	PricesFile     = "prices.txt"
	InquiriesFile  = "inquiries.txt"
)

const (
	floorPrice   = schema.Price(99 * 256)  // 99-000
	ceilingPrice = schema.Price(101 * 256) // 101-000
)

// Generator creates synthetic feed lines for every bond in the
// registry. Prices oscillate tick by tick between 99 and 101.
type Generator struct {
	reg   *schema.Registry
	books []string
	rng   *rand.Rand

	price schema.Price
	up    bool
	index int
}

// NewGenerator creates a generator over the registry's bonds.
func NewGenerator(reg *schema.Registry, books []string, rng *rand.Rand) (*Generator, error) {
	if reg == nil || reg.Count() == 0 {
		return nil, fmt.Errorf("registry has no bonds")
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("generator requires settlement books")
	}
	return &Generator{
		reg:   reg,
		books: books,
		rng:   rng,
		price: floorPrice,
		up:    true,
	}, nil
}

// step advances the oscillating price one tick and bumps the sequence.
func (g *Generator) step() {
	g.index++
	if g.up {
		g.price += schema.PriceTick
		if g.price >= ceilingPrice {
			g.up = false
		}
		return
	}
	g.price -= schema.PriceTick
	if g.price <= floorPrice {
		g.up = true
	}
}

// NextTrade creates the next trade line for a bond.
func (g *Generator) NextTrade(bond schema.Bond) string {
	g.step()
	side := schema.SideBuy
	if g.index%2 == 0 {
		side = schema.SideSell
	}
	quantity := int64(g.index%5+1) * 1_000_000
	book := g.books[g.index%len(g.books)]
	return fmt.Sprintf("%s,T%07d,%s,%s,%d,%s",
		bond.Tenor, g.index, g.price, book, quantity, side)
}

// NextOrderBook creates the next market data line: five levels around
// the oscillating mid, with the top-of-book spread cycling from one to
// four ticks so a crossable book appears once per cycle.
func (g *Generator) NextOrderBook(bond schema.Bond) string {
	g.step()
	topSpread := schema.Price(g.index%4 + 1)
	line := fmt.Sprintf("%s,MKT,%s", bond.Tenor, bond.CUSIP)
	for level := schema.Price(0); level < 5; level++ {
		half := (topSpread + 2*level) / 2
		bid := g.price - half
		offer := g.price - half + topSpread + 2*level
		quantity := int64(level+1) * 10_000_000
		line += fmt.Sprintf(",%s,%s,%d", bid.Decimal(), offer.Decimal(), quantity)
	}
	return line
}

// NextPrice creates the next price line with an alternating spread of
// two or four ticks.
func (g *Generator) NextPrice(bond schema.Bond) string {
	g.step()
	spread := schema.Price(2)
	if g.index%2 == 0 {
		spread = 4
	}
	return fmt.Sprintf("%s,%s,%s,%s",
		bond.Tenor, bond.CUSIP, g.price.Decimal(), spread.Decimal())
}

// NextInquiry creates the next inquiry line in the RECEIVED state.
func (g *Generator) NextInquiry(bond schema.Bond) string {
	g.step()
	side := schema.SideBuy
	if g.rng.Intn(2) == 1 {
		side = schema.SideSell
	}
	quantity := int64(g.rng.Intn(5)+1) * 1_000_000
	return fmt.Sprintf("I%07d,%s,%s,%d,%s,%s",
		g.index, bond.Tenor, side, quantity, g.price.Decimal(), schema.InquiryStateReceived)
}

// Generate writes the four feed files under dir, linesPerBond lines per
// bond in each file.
func (g *Generator) Generate(dir string, linesPerBond int) error {
	if linesPerBond <= 0 {
		return fmt.Errorf("linesPerBond must be > 0")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := []struct {
		name string
		next func(schema.Bond) string
	}{
		{TradesFile, g.NextTrade},
		{MarketDataFile, g.NextOrderBook},
		{PricesFile, g.NextPrice},
		{InquiriesFile, g.NextInquiry},
	}
	for _, f := range files {
		if err := g.writeFile(filepath.Join(dir, f.name), linesPerBond, f.next); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeFile(path string, linesPerBond int, next func(schema.Bond) string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(file)
	for i := 0; i < linesPerBond; i++ {
		for b := 0; b < g.reg.Count(); b++ {
			bond, _ := g.reg.At(b)
			if _, err := buf.WriteString(next(bond) + "\n"); err != nil {
				_ = file.Close()
				return err
			}
		}
	}
	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
