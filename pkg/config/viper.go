// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags, providing a unified
// configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/logging"
)

// InitConfig initializes the application's configuration using Viper. It
// sets up default values, defines configuration search paths, and enables
// reading from environment variables. Called once at application startup.
// An explicit cfgFile (from the --config flag) overrides the search paths.
func InitConfig(cfgFile string) {
	// --- Set Search Paths ---
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                 // Current working directory
		viper.AddConfigPath("/etc/baugesuche/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.baugesuche") // User-specific configuration
	}

	// --- Set Defaults ---
	viper.SetDefault("amtsblatt.base_url", "https://www.amtsblattportal.ch/api/v1")
	viper.SetDefault("amtsblatt.cantons", []string{"ZH", "ZG"})
	viper.SetDefault("amtsblatt.rubrics", []string{"BP-ZH", "BP-ZG"})
	viper.SetDefault("amtsblatt.page_size", 2000)
	viper.SetDefault("amtsblatt.lookback_days", 3)
	viper.SetDefault("amtsblatt.request_timeout", "30s")
	viper.SetDefault("amtsblatt.user_agent", "baugesuche-zh-zg-mfh/1.0")

	// The MFH vocabulary is deliberately configuration: the source's true
	// matching rule is heuristic, so deployments tune this list rather than
	// the code.
	viper.SetDefault("classifier.keywords", []string{
		"MFH",
		"Mehrfamilienhaus",
		"Mehrfamilienhäuser",
		"Mehrfamilienwohnhaus",
		"Mehrparteienhaus",
		"Mehrparteienhäuser",
		"Wohnblock",
		"Wohnanlage",
		"Wohnüberbauung",
		"Überbauung",
		"Reihenhaus",
		"Reihenhäuser",
		"Reihenfamilienhaus",
		"Reiheneinfamilienhaus",
		"Reiheneinfamilienhäuser",
		"Wohnbau",
		"Wohnbebauung",
		"Mehrfamiliengebäude",
		"Mehrfamilienwohngebäude",
	})

	viper.SetDefault("csv.path", "baugesuche_ZH_ZG_MFH.csv")

	viper.SetDefault("sheets.provider", "noop")
	viper.SetDefault("sheets.credentials_file", "service_account.json")
	viper.SetDefault("sheets.spreadsheet_id", "")
	viper.SetDefault("sheets.range", "Sheet1")

	viper.SetDefault("logging.development", false)

	// --- Environment Variables ---
	viper.SetEnvPrefix("BAUGESUCHE") // e.g. BAUGESUCHE_CSV_PATH=/data/mfh.csv
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
