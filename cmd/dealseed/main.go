// Command dealseed populates a SQLite catalog database from the embedded
// deal catalog, so the server can run with catalog.driver=sqlite.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mpocar/dealer-finder/internal/store"
	"github.com/mpocar/dealer-finder/pkg/catalog"
)

func main() {
	dbPath := flag.String("db", "dealfinder.db", "path to the SQLite catalog database")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	seed, err := catalog.New().Deals()
	if err != nil {
		logger.Fatal("failed to load embedded catalog", zap.Error(err))
	}

	// Deals authored without an ID get one here so the primary key holds.
	for i := range seed {
		if seed[i].ID == "" {
			seed[i].ID = uuid.New().String()
		}
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to create schema", zap.Error(err))
	}
	if err := db.ReplaceDeals(ctx, seed); err != nil {
		logger.Fatal("failed to seed deals", zap.Error(err))
	}

	logger.Info("catalog seeded",
		zap.String("path", *dbPath),
		zap.Int("deals", len(seed)),
	)
}
