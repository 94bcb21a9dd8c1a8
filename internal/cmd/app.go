package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matthieukhl/sheetstock/internal/config"
	"github.com/matthieukhl/sheetstock/internal/database"
	"github.com/matthieukhl/sheetstock/internal/delivery"
	"github.com/matthieukhl/sheetstock/internal/inventory"
	"github.com/matthieukhl/sheetstock/internal/logger"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

// app bundles the wired services shared by every command.
type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	source     spreadsheet.Source
	inventory  *inventory.Service
	deliveries *delivery.Register
	db         *database.DB
}

func newApp(ctx context.Context, withJournal bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.Init(logger.ParseEnvironment(cfg.Env))

	source, err := spreadsheet.NewSource(ctx, &cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet source: %w", err)
	}
	if cfg.Source.Driver == "memory" {
		added, err := seedSource(ctx, source, &cfg.Sheets, true)
		if err != nil {
			return nil, fmt.Errorf("failed to seed memory source: %w", err)
		}
		log.Info().Int("products", added).Msg("Memory source seeded with sample products")
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		source:    source,
		inventory: inventory.NewService(source, cfg.Sheets.ProductsID, cfg.Sheets.ProductsWorksheet, log),
	}

	var opts []delivery.Option
	if withJournal && cfg.DB.DSN != "" {
		db, err := database.NewConnection(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		opts = append(opts, delivery.WithJournal(database.NewJournal(db)))
	}
	a.deliveries = delivery.NewRegister(source, cfg.Sheets.DeliveriesID, cfg.Sheets.DeliveriesWorksheet, log, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
