package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/sheets"
)

// newUploadCmd creates the 'upload' subcommand. It reads the CSV written by
// 'fetch' and appends rows missing from the remote spreadsheet.
func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Appends new CSV rows to the Google Sheet",
		Long: `Reads the CSV file produced by the fetch command, determines which
publication IDs are not yet present in the configured spreadsheet, and
appends the missing rows in file order. Rows already present remotely are
skipped, so re-running after a partial failure is safe.`,

		RunE: runUploadCommand,
	}
	return cmd
}

func runUploadCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	provider, err := buildSheetsProvider(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := provider.Close(); cerr != nil {
			logger.Warn("Failed to close sheets provider", zap.Error(cerr))
		}
	}()

	uploader := sheets.NewUploader(provider, logger)
	appended, err := uploader.Upload(cmd.Context(), viper.GetString("csv.path"))
	if err != nil {
		return fmt.Errorf("upload csv: %w", err)
	}

	logger.Info("Upload command finished", zap.Int("appended", appended))
	return nil
}

func buildSheetsProvider(ctx context.Context, logger *zap.Logger) (sheets.Provider, error) {
	providerType := viper.GetString("sheets.provider")
	switch providerType {
	case "google":
		provider, err := sheets.NewGoogleProvider(ctx,
			viper.GetString("sheets.credentials_file"),
			viper.GetString("sheets.spreadsheet_id"),
			viper.GetString("sheets.range"),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("init sheets provider: %w", err)
		}
		return provider, nil
	case "noop":
		logger.Info("Using No-Op sheets provider. Rows will be discarded.")
		return &sheets.NoOpProvider{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown sheets provider: %s", providerType)
	}
}
