package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tabscope/adapters/excel"
	"tabscope/adapters/postgres"
	"tabscope/app"
	"tabscope/internal"
	"tabscope/internal/config"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Services
	ProfileService *app.ProfileService

	// Infrastructure, opened on demand
	DB *sqlx.DB
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	c := &Container{
		Config: cfg,
		Logger: logger,
		ProfileService: app.NewProfileService(
			app.WithWorkers(cfg.Profiling.Workers),
			app.WithChartDefaults(app.ChartDefaults{
				HistogramBins: cfg.Charts.HistogramBins,
				TopN:          cfg.Charts.TopN,
			}),
			app.WithLogger(logger),
		),
	}

	return c, nil
}

// ReaderConfig returns the spreadsheet reader settings from configuration
func (c *Container) ReaderConfig() excel.ReaderConfig {
	return excel.ReaderConfig{
		Sheet: c.Config.Ingestion.ExcelSheet,
		NA:    c.Config.Ingestion.NASet(),
	}
}

// OpenDatabase connects to dsn, or DATABASE_URL when dsn is empty
func (c *Container) OpenDatabase(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if c.DB != nil {
		return c.DB, nil
	}
	if dsn == "" {
		dsn = c.Config.Database.URL
	}

	db, err := postgres.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	c.DB = db
	return db, nil
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		c.DB = nil
	}
	return nil
}
