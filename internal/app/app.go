// Package app initializes and holds the run-scoped application services.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/logging"
)

// App holds the services shared by one run: the configured logger and the
// run identity. It is initialized once per invocation and discarded at run
// end; no ambient singleton survives across runs.
type App struct {
	logger *zap.Logger
	runID  string
}

// NewApp builds the run services from the loaded configuration. Every log
// line of the run carries the UUIDv7 run ID.
func NewApp(_ context.Context) (*App, error) {
	logger, err := logging.New(viper.GetBool("logging.development"))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	logger = logger.With(zap.String("run_id", id.String()))
	// Later logging.L callers pick up the run-scoped logger too.
	logging.L = logger

	logger.Info("Application services initialized")
	return &App{logger: logger, runID: id.String()}, nil
}

// GetLogger returns the run-scoped zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// RunID returns this run's identifier.
func (a *App) RunID() string {
	return a.runID
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.logger.Sync()
}
