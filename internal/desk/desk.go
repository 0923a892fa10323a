// Package desk assembles the trading desk pipeline: every service, the
// shared dispatcher, the subscriber graph and the feed replay driver.
package desk

import (
	"errors"
	"math/rand"
	"time"

	"main/internal/booking"
	"main/internal/bus"
	"main/internal/execution"
	"main/internal/feed"
	"main/internal/gui"
	"main/internal/histdata"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/stream"
)

// Options overrides the desk's injected sources. Nil fields fall back
// to production defaults.
type Options struct {
	IDs   execution.IDSource
	Sizes stream.SizeSource
	Now   func() time.Time
	Rand  *rand.Rand
}

// Desk is the wired pipeline.
type Desk struct {
	Registry   *schema.Registry
	Dispatcher *bus.Dispatcher
	Metrics    *obs.Metrics

	MarketData *marketdata.Service
	ExecAlgo   *execution.AlgoService
	Execution  *execution.Service
	Booking    *booking.Service
	Position   *position.Service
	Risk       *risk.Service
	Pricing    *pricing.Service
	StreamAlgo *stream.AlgoService
	Streaming  *stream.Service
	GUI        *gui.Service
	Inquiry    *inquiry.Service

	cfg ops.Loaded
}

// Build constructs every service and wires the subscriber graph.
// Two chains share the dispatcher: market data through risk, and
// pricing through the display sink. Inquiries are self-contained.
func Build(cfg ops.Loaded, opt Options) (*Desk, error) {
	rng := opt.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	ids := opt.IDs
	if ids == nil {
		ids = execution.NewClockIDSource()
	}
	sizes := opt.Sizes
	if sizes == nil {
		sizes = stream.NewRandSizeSource(rng)
	}

	router, err := execution.NewRandomRouter(cfg.Books, rng)
	if err != nil {
		return nil, err
	}

	metrics := obs.NewMetrics()
	d := bus.NewDispatcher(cfg.QueueCapacity)
	d.OnDepth(metrics.ObserveQueueDepth)

	desk := &Desk{
		Registry:   cfg.Registry,
		Dispatcher: d,
		Metrics:    metrics,
		MarketData: marketdata.NewService(d),
		ExecAlgo:   execution.NewAlgoService(d, ids),
		Execution:  execution.NewService(d, router),
		Booking:    booking.NewService(d),
		Position:   position.NewService(d),
		Risk:       risk.NewService(d, cfg.Registry),
		Pricing:    pricing.NewService(d),
		StreamAlgo: stream.NewAlgoService(d, sizes),
		Streaming:  stream.NewService(d),
		GUI:        gui.NewService(d, opt.Now),
		Inquiry:    inquiry.NewService(d, cfg.Quote),
		cfg:        cfg,
	}
	desk.wire()
	return desk, nil
}

// wire registers every subscriber edge of the pipeline in one place.
func (k *Desk) wire() {
	k.MarketData.Subscribe(bus.ListenerFunc[schema.OrderBook](func(book schema.OrderBook) error {
		k.Metrics.IncEvent(schema.EventOrderBook)
		err := k.ExecAlgo.OnBook(book)
		if errors.Is(err, execution.ErrNoMatch) {
			return nil
		}
		return err
	}))
	k.ExecAlgo.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](func(order schema.ExecutionOrder) error {
		k.Metrics.IncEvent(schema.EventExecution)
		return k.Execution.ExecuteOrder(order, schema.MarketBrokerTec)
	}))
	k.Execution.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](func(order schema.ExecutionOrder) error {
		trade, err := k.Execution.Trade(order.OrderID)
		if err != nil {
			return err
		}
		return k.Booking.BookTrade(trade)
	}))
	k.Booking.Subscribe(bus.ListenerFunc[schema.Trade](func(trade schema.Trade) error {
		k.Metrics.IncEvent(schema.EventTrade)
		return k.Position.AddTrade(trade)
	}))
	k.Position.Subscribe(bus.ListenerFunc[schema.Position](func(p schema.Position) error {
		k.Metrics.IncEvent(schema.EventPosition)
		return k.Risk.AddPosition(p)
	}))
	k.Risk.Subscribe(bus.ListenerFunc[schema.PV01](func(schema.PV01) error {
		k.Metrics.IncEvent(schema.EventRisk)
		return nil
	}))

	k.Pricing.Subscribe(bus.ListenerFunc[schema.PriceQuote](func(quote schema.PriceQuote) error {
		k.Metrics.IncEvent(schema.EventPrice)
		return k.StreamAlgo.OnPrice(quote)
	}))
	k.StreamAlgo.Subscribe(bus.ListenerFunc[schema.PriceStream](func(ps schema.PriceStream) error {
		k.Metrics.IncEvent(schema.EventPriceStream)
		return k.Streaming.PublishPrice(ps)
	}))
	k.Streaming.Subscribe(bus.ListenerFunc[schema.PriceStream](func(ps schema.PriceStream) error {
		k.Metrics.IncEvent(schema.EventQuote)
		return k.GUI.OnStream(ps)
	}))
}

// Archive subscribes a history publisher to every archivable service.
// Call before replay so no update is missed.
func (k *Desk) Archive(pub histdata.Publisher) {
	histdata.Attach(pub, histdata.Sources{
		Position:  k.Position,
		Risk:      k.Risk,
		Execution: k.Execution,
		Stream:    k.Streaming,
		GUI:       k.GUI,
		Inquiry:   k.Inquiry,
	})
}

// Replay drives the four input feeds through the pipeline in order:
// trades, market data, prices, inquiries. Each event's downstream chain
// runs to completion before the next line is read. Feeds with no
// configured path are skipped.
func (k *Desk) Replay() error {
	reg := k.Registry
	feeds := []struct {
		path    string
		handler func(line string) error
	}{
		{k.cfg.Feeds.Trades, func(line string) error {
			trade, err := feed.ParseTrade(line, reg)
			if err != nil {
				return err
			}
			return k.Booking.BookTrade(trade)
		}},
		{k.cfg.Feeds.MarketData, func(line string) error {
			book, err := feed.ParseOrderBook(line, reg)
			if err != nil {
				return err
			}
			return k.MarketData.Ingest(book)
		}},
		{k.cfg.Feeds.Prices, func(line string) error {
			quote, err := feed.ParsePriceQuote(line, reg)
			if err != nil {
				return err
			}
			return k.Pricing.Ingest(quote)
		}},
		{k.cfg.Feeds.Inquiries, func(line string) error {
			inq, err := feed.ParseInquiry(line, reg)
			if err != nil {
				return err
			}
			k.Metrics.IncEvent(schema.EventInquiry)
			return k.Inquiry.Ingest(inq)
		}},
	}

	for _, f := range feeds {
		if f.path == "" {
			continue
		}
		stats, err := feed.Replay(f.path, f.handler)
		k.Metrics.AddReplay(stats.Replayed, stats.Malformed, stats.Failed)
		if err != nil {
			return err
		}
	}
	return nil
}
