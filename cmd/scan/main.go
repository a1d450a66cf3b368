package main

import (
	"context"
	"log"

	"github.com/gainerwatch/backend/internal/config"
	"github.com/gainerwatch/backend/internal/yahoo"
)

// One-shot scrape of the gainers table, for smoke-testing the source
// client without running the server.
func main() {
	log.Println("🚀 Fetching today's top gainers...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := yahoo.NewClient(cfg)

	snapshots, err := client.TopGainers(context.Background())
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	for i, s := range snapshots {
		log.Printf("%2d. %-8s %-30.30s $%.2f (%+.2f%%) vol %s cap %s",
			i+1, s.Symbol, s.Name, s.Price, s.ChangePercent, s.Volume, s.MarketCap)
	}

	log.Printf("✅ %d stocks scraped.", len(snapshots))
}
