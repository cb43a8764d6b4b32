// Package app wires configuration, storage, and services into a single
// application core shared by entrypoints and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fintrackhq/fintrack/internal/clients/gemini"
	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/identity"
	"github.com/fintrackhq/fintrack/internal/interfaces"
	"github.com/fintrackhq/fintrack/internal/services/ledger"
	"github.com/fintrackhq/fintrack/internal/services/statement"
	"github.com/fintrackhq/fintrack/internal/session"
	"github.com/fintrackhq/fintrack/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.BlobStore
	Identity    *identity.Store
	Session     *session.Manager
	Ledger      *ledger.Service
	Statements  *statement.Parser
	Gemini      *gemini.Client // nil when no API key is configured
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, and all services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Check provided path, FINTRACK_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FINTRACK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "fintrack.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fintrack.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewStore(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Identity:    identity.NewStore(logger, store),
		Session:     session.NewManager(logger, store),
		Statements:  statement.NewParser(logger),
		StartupTime: time.Now(),
	}
	a.Ledger = ledger.NewService(logger, a.Identity)

	if key := config.Clients.Gemini.APIKey; key != "" {
		client, err := gemini.NewClient(context.Background(), key,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable - category suggestions disabled")
		} else {
			a.Gemini = client
		}
	} else {
		logger.Debug().Msg("Gemini API key not configured - category suggestions disabled")
	}

	return a, nil
}

// Close releases storage resources.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
