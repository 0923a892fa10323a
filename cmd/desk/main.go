package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/desk"
	"main/internal/feedgen"
	"main/internal/histdata"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	dataDir := flag.String("data-dir", "", "Directory holding the input feeds (overrides config)")
	outDir := flag.String("out-dir", "", "Directory for output logs (overrides config)")
	seed := flag.Int64("seed", 0, "Random seed (overrides config)")
	pgDSN := flag.String("pg-dsn", "", "Postgres DSN for the history store (overrides config)")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	applyOverrides(&cfg, *dataDir, *outDir, *seed, *pgDSN)

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "desk",
			ServerAddress:   *pyroscopeAddr,
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	if err := run(cfg); err != nil {
		log.Fatalf("desk run failed: %v", err)
	}
}

// applyOverrides lets flags win over the config file.
func applyOverrides(cfg *ops.Loaded, dataDir, outDir string, seed int64, pgDSN string) {
	if dataDir != "" {
		cfg.Feeds = ops.FeedsConfig{
			Trades:     filepath.Join(dataDir, feedgen.TradesFile),
			MarketData: filepath.Join(dataDir, feedgen.MarketDataFile),
			Prices:     filepath.Join(dataDir, feedgen.PricesFile),
			Inquiries:  filepath.Join(dataDir, feedgen.InquiriesFile),
		}
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if pgDSN != "" {
		cfg.PostgresDSN = pgDSN
	}
}

func run(cfg ops.Loaded) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	d, err := desk.Build(cfg, desk.Options{})
	if err != nil {
		return err
	}

	filePub, err := histdata.NewFilePublisher(ctx, cfg.OutDir, cfg.Books, cfg.QueueCapacity)
	if err != nil {
		return err
	}
	publishers := histdata.MultiPublisher{filePub}
	if cfg.PostgresDSN != "" {
		pgPub, err := histdata.NewPGPublisher(cfg.PostgresDSN)
		if err != nil {
			_ = filePub.Close()
			return err
		}
		publishers = append(publishers, pgPub)
	}
	d.Archive(publishers)

	replayErr := d.Replay()
	if err := publishers.Close(); err != nil && replayErr == nil {
		replayErr = err
	}

	snapshot := d.Metrics.Snapshot()
	logs.Infof("replay done: events=%v queue_high=%d replayed=%d malformed=%d failed=%d",
		snapshot.EventCounts, snapshot.QueueHighMark,
		snapshot.Replayed, snapshot.Malformed, snapshot.Failed)
	return replayErr
}
