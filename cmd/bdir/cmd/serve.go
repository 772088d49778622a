/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/api"
	"github.com/ssargent/bdirkit/pkg/bdir"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the bdir REST API server. Records can be decoded, validated and
archived over HTTP; every /api/v1 route requires the X-API-Key header.

The API key comes from the configuration file written by 'bdir init', the
BDIR_API_KEY environment variable or --api-key.

Examples:
  bdir serve
  bdir serve --api-key=mysecretkey --port=8080 --bind=0.0.0.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := appConfig
		if cmd.Flags().Changed("port") {
			config.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			config.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			config.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		if config.Security.APIKey == "" || config.Security.APIKey == "auto" {
			return errors.New("no API key configured: run 'bdir init', set BDIR_API_KEY or pass --api-key")
		}
		purpose, err := bdir.ParsePurpose(config.Codec.Purpose)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, store, api.ServerConfig{
			Port:           config.Port,
			Bind:           config.Bind,
			APIKey:         config.Security.APIKey,
			DataDir:        config.DataDir,
			DefaultPurpose: purpose,
			HeaderOnly:     config.Codec.HeaderOnly,
			Logger:         logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind (overrides config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (overrides config)")
}
