package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/bank"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/lox/bank-accounts/internal/refdata"
)

// SetupLogger creates a stderr logger at the configured level
func SetupLogger(config CommonConfig) (*log.Logger, error) {
	logger := log.New(os.Stderr)

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// DatabasePath resolves the reference database path against the data directory
func DatabasePath(config CommonConfig) string {
	if filepath.IsAbs(config.Database) {
		return config.Database
	}
	return filepath.Join(config.DataDir, config.Database)
}

// OpenSource opens the configured reference data source. The returned
// close function must be called when the source is no longer needed.
func OpenSource(ctx context.Context, config CommonConfig, logger *log.Logger) (refdata.Source, func(), error) {
	switch config.Source {
	case "sqlite":
		db, err := refdata.OpenSQLite(ctx, DatabasePath(config), logger)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Warn("Failed to close database", "error", err)
			}
		}, nil
	case "files", "":
		return refdata.NewFileSource(config.DataDir, config.Country, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown reference data source %q", config.Source)
	}
}

// SetupRegistry loads reference data and returns an account registry ready for use
func SetupRegistry(ctx context.Context, config CommonConfig, logger *log.Logger) (*account.Registry, error) {
	base, err := money.ParseCurrency(config.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("invalid base currency: %w", err)
	}

	src, closeSource, err := OpenSource(ctx, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer closeSource()

	data, err := refdata.Load(ctx, src, logger)
	if err != nil {
		return nil, err
	}

	reg := account.NewRegistry(
		money.NewConverter(base, logger),
		bank.NewRegistry(logger),
		logger,
		account.WithStrictSavings(config.StrictSavings),
	)
	if err := data.Install(reg); err != nil {
		return nil, fmt.Errorf("failed to install reference data: %w", err)
	}
	return reg, nil
}
