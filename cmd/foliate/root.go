package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/foliate/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foliate",
	Short: "Reconstruct the reading order of scanned book pages",
	Long: `Foliate takes a directory of scanned page images or a PDF, reads the
printed page numbers via OCR, and decides the correct reading order.

The pipeline includes:
  - Page number detection (arabic, roman, hybrid, hierarchical)
  - Numbering scheme analysis with transition detection
  - Conflict resolution when pages claim the same position
  - Content analysis to place unnumbered or uncertain pages
  - A confidence report flagging pages that need human review`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./foliate.yaml or ~/.foliate/foliate.yaml)",
	)
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "human-readable console logs")
	rootCmd.PersistentFlags().String("log-file", "", "also log to this file, with rotation")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		return logger.Init(logger.Options{
			Level:      viper.GetString("log.level"),
			Pretty:     viper.GetBool("log.pretty"),
			File:       viper.GetString("log.file"),
			MaxSizeMB:  viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
			MaxAgeDays: viper.GetInt("log.max_age_days"),
			Compress:   viper.GetBool("log.compress"),
		})
	}

	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig wires viper: defaults, FOLIATE_ environment variables, an
// optional config file, and the persistent logging flags.
func initConfig(cmd *cobra.Command) error {
	viper.SetDefault("min_confidence_for_auto_order", 90.0)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)
	viper.SetDefault("log.max_size_mb", 20)
	viper.SetDefault("log.max_backups", 5)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)

	viper.SetEnvPrefix("FOLIATE")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("foliate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.foliate")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := viper.BindPFlag("log.pretty", cmd.Flags().Lookup("log-pretty")); err != nil {
		return err
	}
	return viper.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))
}
