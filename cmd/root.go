package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/app"
	"github.com/bauradar/baugesuche-crawler/internal/logging"
	"github.com/bauradar/baugesuche-crawler/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use.
// This allows us to inject a mock app during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	RunID() string
}

// newApp is the application factory. It's a variable so we can
// replace it with a mock factory in our tests.
var newApp func(ctx context.Context) (App, error) = func(ctx context.Context) (App, error) {
	return app.NewApp(ctx)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baugesuche",
		Short: "Tracks multi-family-house building permits in ZH and ZG.",
		Long: `baugesuche fetches public building-permit announcements from the
amtsblattportal publications API, keeps the multi-family-house projects,
appends them to a CSV file, and uploads new rows to a Google Sheet. It is
meant to be invoked once per day by an external scheduler.`,

		// Runs AFTER config is loaded but BEFORE the subcommand's RunE;
		// builds the run services and injects them into the context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Ensures services are shut down at run end.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	// Initialize Viper configuration. The closure defers reading cfgFile
	// until after cobra has parsed the flags.
	cobra.OnInitialize(func() {
		config.InitConfig(cfgFile)
	})

	// Define persistent flags.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.baugesuche/config.yaml)")

	// Add subcommands.
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newUploadCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	// Initialize the logger once at the very start.
	logging.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}
