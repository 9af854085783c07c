package cmd

import (
	"context"
	"fmt"

	"github.com/argentum-labs/stackvault/internal/config"
	"github.com/argentum-labs/stackvault/internal/logger"
	"github.com/argentum-labs/stackvault/internal/spot"
)

// Spot prints the current XAG/USD spot price
func Spot(ctx context.Context) {
	cfg, err := config.Load()
	if err != nil {
		HandleError(err)
	}

	stop := startSpinner("Fetching spot price...")
	price := spot.New(spot.Config{
		APIKey:   cfg.MetalsAPIKey,
		CacheTTL: cfg.SpotCacheTTL,
		Log:      logger.New("spot"),
	}).Price(ctx)
	stop()

	if cfg.MetalsAPIKey == "" {
		warnColor.Println("METALS_API_KEY not set; showing fallback price")
	}
	fmt.Printf("XAG/USD: $%.2f\n", price)
}
