package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mpocar/dealer-finder/internal/categories"
	"github.com/mpocar/dealer-finder/internal/config"
	"github.com/mpocar/dealer-finder/internal/deals"
	"github.com/mpocar/dealer-finder/internal/server"
	"github.com/mpocar/dealer-finder/internal/store"
	"github.com/mpocar/dealer-finder/internal/version"
	"github.com/mpocar/dealer-finder/pkg/catalog"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("dealer-finder server starting")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	source, err := catalogSource(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	engine := deals.NewEngine(source)

	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	srv := server.New(addr, logger,
		deals.NewHandler(engine, logger),
		categories.NewHandler(source, logger),
	)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("dealer-finder server ready", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("dealer-finder server stopped")
}

// catalogSource resolves the configured catalog driver into an immutable
// in-memory source. The SQLite driver loads one consistent snapshot at
// startup; each request then operates on that snapshot.
func catalogSource(cfg *config.Config, logger *zap.Logger) (deals.Source, error) {
	switch driver := cfg.GetString("catalog.driver"); driver {
	case config.DriverSQLite:
		path := cfg.GetString("catalog.db_path")
		db, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		snapshot, err := db.LoadDeals(context.Background())
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded from sqlite",
			zap.String("path", path),
			zap.Int("deals", len(snapshot)),
		)
		return deals.Static(snapshot), nil

	case config.DriverEmbedded:
		return catalog.New(), nil

	default:
		return nil, fmt.Errorf("unknown catalog driver %q", driver)
	}
}
