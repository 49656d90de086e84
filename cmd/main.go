// Command portfolio evaluates persisted trading positions against a market
// price: it reports cost basis, value and ROI per pair and can ratchet
// trailing-stop sale targets upward.
//
// Usage:
//
//	portfolio --config config.yaml --price 53000
//	portfolio --config config.yaml --price 53000 --trail
//	portfolio --config config.yaml --price 53000 --webaddr :8080
//	portfolio --setup
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/venantvr/go-trading-objects/config"
	"github.com/venantvr/go-trading-objects/internal/report"
	"github.com/venantvr/go-trading-objects/internal/setup"
	"github.com/venantvr/go-trading-objects/internal/storage/positions"
	"github.com/venantvr/go-trading-objects/internal/web"
)

func main() {
	cfg, flags, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if flags.Setup {
		path := flags.ConfigPath
		if path == "" {
			path = "config.gen.yaml"
		}
		if err := setup.RunTUI(path); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	pair, err := cfg.NewPair()
	if err != nil {
		logger.Fatal("invalid pair", zap.Error(err))
	}

	walDir := cfg.WalDir
	if walDir == "" {
		walDir = positions.DefaultDir
	}
	store, err := positions.NewWALStore(walDir)
	if err != nil {
		logger.Fatal("failed to open position store", zap.Error(err))
	}
	defer store.Close()

	open, err := store.Load(pair)
	if err != nil {
		logger.Fatal("failed to load positions", zap.Error(err))
	}
	logger.Info("positions loaded",
		zap.String("pair", pair.ID()),
		zap.Int("count", len(open)))

	if flags.Price <= 0 {
		logger.Fatal("a positive --price is required to evaluate the portfolio")
	}
	currentPrice := pair.NewPrice(flags.Price)

	if flags.Trail && cfg.TrailPercent > 0 {
		for i, pos := range open {
			trailed, err := pos.ApplyTrailingStop(currentPrice, cfg.TrailPercent)
			if err != nil {
				logger.Fatal("trailing stop failed",
					zap.String("position", pos.ID()),
					zap.Error(err))
			}
			if trailed.ExpectedSalePrice().Equal(pos.ExpectedSalePrice()) {
				continue
			}
			if err := store.SavePosition(trailed); err != nil {
				logger.Fatal("failed to persist position",
					zap.String("position", pos.ID()),
					zap.Error(err))
			}
			logger.Info("sale target raised",
				zap.String("position", pos.ID()),
				zap.String("target", trailed.ExpectedSalePrice().String()))
			open[i] = trailed
		}
	}

	summary, err := report.Evaluate(pair, open, currentPrice)
	if err != nil {
		logger.Fatal("failed to evaluate portfolio", zap.Error(err))
	}

	fmt.Print(report.Render(summary))

	if cfg.WebAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("web dashboard listening", zap.String("addr", cfg.WebAddr))
		if err := web.NewServer(cfg.WebAddr, store).Start(ctx); err != nil {
			logger.Fatal("web server failed", zap.Error(err))
		}
	}
}
