package main

import (
	"flag"
	"log"
	"math/rand"

	"main/internal/feedgen"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	outDir := flag.String("out-dir", "data", "Directory for the generated feeds")
	lines := flag.Int("lines", 10, "Lines per bond in each feed")
	seed := flag.Int64("seed", 0, "Random seed (overrides config)")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	gen, err := feedgen.NewGenerator(cfg.Registry, cfg.Books, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		log.Fatalf("generator setup failed: %v", err)
	}
	if err := gen.Generate(*outDir, *lines); err != nil {
		log.Fatalf("feed generation failed: %v", err)
	}
	log.Printf("generated feeds under %s (%d lines per bond)", *outDir, *lines)
}
