package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/database"
	"github.com/edgard/keeperbot/internal/kv"
)

// stores holds the backing key/value stores of the three chat stores. db is
// nil for the memory driver.
type stores struct {
	warns   kv.Store[kv.ChatKey, int]
	filters kv.Store[kv.ChatKey, string]
	notes   kv.Store[kv.ChatKey, string]
	db      *sqlx.DB
}

func openStores(cfg config.StorageConfig, log *slog.Logger) (stores, error) {
	switch cfg.Driver {
	case "", "memory":
		log.Info("Using memory storage")
		return stores{
			warns:   kv.NewMemory[kv.ChatKey, int](),
			filters: kv.NewMemory[kv.ChatKey, string](),
			notes:   kv.NewMemory[kv.ChatKey, string](),
		}, nil
	case "sqlite":
		db, err := database.NewDB(cfg.Name)
		if err != nil {
			return stores{}, err
		}
		log.Info("Using sqlite storage", "name", cfg.Name)
		return stores{
			warns:   database.NewKV[int](db, database.BucketWarns, log),
			filters: database.NewKV[string](db, database.BucketFilters, log),
			notes:   database.NewKV[string](db, database.BucketNotes, log),
			db:      db,
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
