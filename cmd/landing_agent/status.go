package main

import (
	"fmt"

	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/observability"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [session-id]",
	Short: "Show the sections and approval progress of a session",
	Long:  "Show one session, or with --list the most recent sessions stored in PostgreSQL.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

var (
	statusList  bool
	statusLimit int
)

func init() {
	statusCmd.Flags().BoolVar(&statusList, "list", false, "List recent sessions (postgres store only)")
	statusCmd.Flags().IntVar(&statusLimit, "limit", 20, "Maximum number of sessions to list")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if statusList {
		if cfg.Store != config.StorePostgres {
			return fmt.Errorf("--list requires the postgres store (set DATABASE_URL)")
		}
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		summaries, err := database.ListSessions(ctx, statusLimit)
		if err != nil {
			return err
		}
		printer.PrintSessionList(summaries)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a session id is required unless --list is given")
	}

	sessions, closeStore, err := openService(ctx, cfg, config.StoreFile)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, err := sessions.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printer.PrintSession(doc, catalogFor(doc))
	return nil
}
