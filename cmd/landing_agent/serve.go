package main

import (
	"fmt"

	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start an HTTP server with the generation form, the preview and regeneration pages and the JSON API.
Sessions are kept in memory unless SESSION_STORE or DATABASE_URL selects another store.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	sessions, closeStore, err := openService(ctx, cfg, config.StoreMemory)
	if err != nil {
		return fmt.Errorf("failed to open sessions: %w", err)
	}

	srv := server.New(server.Config{
		Port:       port,
		Sessions:   sessions,
		OnShutdown: closeStore,
	})
	return srv.Start(ctx)
}
