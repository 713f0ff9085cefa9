// Package cmd defines and implements the CLI commands for the baugesuche executable.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/amtsblatt"
	"github.com/bauradar/baugesuche-crawler/internal/classify"
	"github.com/bauradar/baugesuche-crawler/internal/clock/system"
	"github.com/bauradar/baugesuche-crawler/internal/permit"
	"github.com/bauradar/baugesuche-crawler/internal/pipeline"
)

// newFetchCmd creates the 'fetch' subcommand. It runs the full
// fetch → classify → extract → CSV-append pass once and exits.
func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetches recent Baugesuche and appends MFH records to the CSV",
		Long: `Pages through the publications API for the configured cantons and
rubrics, keeps announcements matching the multi-family-house vocabulary,
extracts the applicant, and appends new records to the CSV file. Records
already present in the file are skipped.`,

		RunE: runFetchCommand,
	}
	return cmd
}

func runFetchCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	engine, err := buildPipelineEngine(logger)
	if err != nil {
		return err
	}

	counters, err := engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	logger.Info("Fetch command finished",
		zap.Int("listed", counters.Listed),
		zap.Int("appended", counters.Appended))
	return nil
}

func buildPipelineEngine(logger *zap.Logger) (*pipeline.Engine, error) {
	cfg, err := amtsblatt.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load amtsblatt config: %w", err)
	}
	client := amtsblatt.NewClient(cfg, system.New(), logger)

	matcher, err := classify.NewMatcher(viper.GetStringSlice("classifier.keywords"))
	if err != nil {
		return nil, fmt.Errorf("init classifier: %w", err)
	}

	sink := permit.NewCSVSink(viper.GetString("csv.path"), logger)

	return pipeline.New(client, matcher, sink, logger), nil
}
