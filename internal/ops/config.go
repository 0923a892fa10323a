// Package ops loads and resolves the desk's JSON runtime configuration.
package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"main/internal/schema"
)

const (
	defaultQuote         = "100-000"
	defaultQueueCapacity = 4096
	defaultOutDir        = "out"
)

var defaultBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// FileConfig mirrors the JSON config layout. Every field is optional;
// the zero value resolves to the stock desk setup.
type FileConfig struct {
	Books         []string          `json:"books"`
	Quote         string            `json:"quote"`
	PV01          map[string]string `json:"pv01"`
	Bonds         []BondConfig      `json:"bonds"`
	Feeds         FeedsConfig       `json:"feeds"`
	OutDir        string            `json:"outDir"`
	QueueCapacity int               `json:"queueCapacity"`
	PostgresDSN   string            `json:"postgresDsn"`
	Seed          int64             `json:"seed"`
}

// BondConfig describes one bond table entry.
type BondConfig struct {
	Tenor    string `json:"tenor"`
	CUSIP    string `json:"cusip"`
	Issuer   string `json:"issuer"`
	Coupon   string `json:"coupon"`
	Maturity string `json:"maturity"`
	PV01     string `json:"pv01"`
}

// FeedsConfig names the four input feed files.
type FeedsConfig struct {
	Trades     string `json:"trades"`
	MarketData string `json:"marketData"`
	Prices     string `json:"prices"`
	Inquiries  string `json:"inquiries"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Registry      *schema.Registry
	Books         []string
	Quote         schema.Price
	Feeds         FeedsConfig
	OutDir        string
	QueueCapacity int
	PostgresDSN   string
	Seed          int64
}

// Load reads a JSON config file and resolves it. An empty path resolves
// the zero-value config.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, err
		}
	}
	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return Loaded{}, err
	}

	books := cfg.Books
	if len(books) == 0 {
		books = defaultBooks
	}

	quoteToken := cfg.Quote
	if quoteToken == "" {
		quoteToken = defaultQuote
	}
	quote, err := schema.ParsePrice32(quoteToken)
	if err != nil {
		return Loaded{}, fmt.Errorf("invalid quote: %w", err)
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = defaultOutDir
	}

	capacity := cfg.QueueCapacity
	if capacity == 0 {
		capacity = defaultQueueCapacity
	}
	if capacity < 0 {
		return Loaded{}, fmt.Errorf("queueCapacity must be > 0")
	}

	return Loaded{
		Registry:      registry,
		Books:         books,
		Quote:         quote,
		Feeds:         cfg.Feeds,
		OutDir:        outDir,
		QueueCapacity: capacity,
		PostgresDSN:   cfg.PostgresDSN,
		Seed:          cfg.Seed,
	}, nil
}

func buildRegistry(cfg FileConfig) (*schema.Registry, error) {
	if len(cfg.Bonds) == 0 {
		if len(cfg.PV01) == 0 {
			return schema.DefaultRegistry(), nil
		}
		return overridePV01(cfg.PV01)
	}

	reg := schema.NewRegistry()
	for _, b := range cfg.Bonds {
		bond, pv01, err := resolveBond(b, cfg.PV01)
		if err != nil {
			return nil, err
		}
		if err := reg.AddBond(bond, pv01); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// overridePV01 rebuilds the default table with per-tenor PV01 overrides.
func overridePV01(overrides map[string]string) (*schema.Registry, error) {
	stock := schema.DefaultRegistry()
	reg := schema.NewRegistry()
	for i := 0; i < stock.Count(); i++ {
		bond, _ := stock.At(i)
		pv01, _ := stock.PV01PerUnit(bond.Tenor)
		if token, ok := overrides[bond.Tenor]; ok {
			parsed, err := decimal.NewFromString(token)
			if err != nil {
				return nil, fmt.Errorf("invalid pv01 for %s: %w", bond.Tenor, err)
			}
			pv01 = parsed
		}
		if err := reg.AddBond(bond, pv01); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func resolveBond(b BondConfig, overrides map[string]string) (schema.Bond, decimal.Decimal, error) {
	coupon, err := decimal.NewFromString(b.Coupon)
	if err != nil {
		return schema.Bond{}, decimal.Zero, fmt.Errorf("invalid coupon for %s: %w", b.Tenor, err)
	}
	maturity, err := time.Parse("2006-01-02", b.Maturity)
	if err != nil {
		return schema.Bond{}, decimal.Zero, fmt.Errorf("invalid maturity for %s: %w", b.Tenor, err)
	}

	pv01Token := b.PV01
	if token, ok := overrides[b.Tenor]; ok {
		pv01Token = token
	}
	pv01 := decimal.New(21, -4)
	if pv01Token != "" {
		pv01, err = decimal.NewFromString(pv01Token)
		if err != nil {
			return schema.Bond{}, decimal.Zero, fmt.Errorf("invalid pv01 for %s: %w", b.Tenor, err)
		}
	}

	issuer := b.Issuer
	if issuer == "" {
		issuer = "T"
	}
	return schema.Bond{
		Tenor:    b.Tenor,
		CUSIP:    b.CUSIP,
		Issuer:   issuer,
		Coupon:   coupon,
		Maturity: maturity,
	}, pv01, nil
}
