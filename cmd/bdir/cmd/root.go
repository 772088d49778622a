/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/config"
	"github.com/ssargent/bdirkit/pkg/di"
)

var (
	// container supplies the record store and server factories
	container *di.Container

	// appConfig and logger are resolved before every command runs
	appConfig *config.Config
	logger    *slog.Logger
)

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bdir",
	Short: "bdir - ISO/IEC 19794 biometric record toolkit",
	Long: `bdir decodes, validates, builds and archives ISO/IEC 19794-4 finger and
19794-6 iris image records (BDIR version 020).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file read before BDIR_* variables")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the record archive (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringP("output", "o", formatTable, "Output format: table, json, yaml or cbor")
}

// loadConfig layers the config file, the environment and the flags.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return err
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	log, err := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = log
	return nil
}
