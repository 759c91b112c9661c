package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fisiolab/tenslab-api/internal/config"
	"github.com/fisiolab/tenslab-api/internal/domain/sim"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
	"github.com/fisiolab/tenslab-api/internal/platform/logger"
	"github.com/fisiolab/tenslab-api/internal/platform/postgres"
	"github.com/fisiolab/tenslab-api/internal/service/lab"
)

// application holds the long-lived dependencies of the server process.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	labService lab.Service
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, schema migrations, the simulation
// engine and the lab service.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database after migration failure",
				"error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	simService := sim.NewServiceWithParams(simParamsFromConfig(cfg.Sim))
	catalog := tissue.NewDefaultCatalog()
	configStore := postgres.NewPostgresTissueConfigStore(db, appLogger)
	labService := lab.NewService(simService, catalog, configStore, db, appLogger)

	return &application{
		config:     cfg,
		logger:     appLogger,
		db:         db,
		labService: labService,
	}, nil
}

// simParamsFromConfig maps the optional config overrides onto the model
// coefficients. Zero-valued overrides keep the built-in defaults.
func simParamsFromConfig(cfg config.SimConfig) *sim.Params {
	return sim.NewParams(sim.ParamsConfig{
		MetalImplantMultiplier:   cfg.MetalImplantMultiplier,
		ShallowBoneMultiplier:    cfg.ShallowBoneMultiplier,
		ComfortableThreshold:     cfg.ComfortableThreshold,
		ComfortModerateThreshold: cfg.ComfortModerateThreshold,
		ModerateRiskThreshold:    cfg.ModerateRiskThreshold,
		HighRiskThreshold:        cfg.HighRiskThreshold,
	})
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		} else {
			app.logger.Info("Database connection closed")
		}
	}
}
