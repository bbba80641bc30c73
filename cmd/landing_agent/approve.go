package main

import (
	"fmt"

	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/observability"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve <session-id> [section...]",
	Short: "Approve sections of a session",
	Long: `Mark sections as approved. Sections already approved are left alone.
With --toggle each section flips state instead, like the approve button of the preview page.
With --all every pending section is approved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApprove,
}

var (
	approveAll    bool
	approveToggle bool
)

func init() {
	approveCmd.Flags().BoolVar(&approveAll, "all", false, "Approve every pending section")
	approveCmd.Flags().BoolVar(&approveToggle, "toggle", false, "Flip the state of the given sections")

	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sessions, closeStore, err := openService(ctx, cfg, config.StoreFile)
	if err != nil {
		return err
	}
	defer closeStore()

	id, keys := args[0], args[1:]
	doc, err := sessions.Get(ctx, id)
	if err != nil {
		return err
	}

	if approveAll {
		keys = nil
		for _, key := range catalogFor(doc).Keys() {
			if state := doc.Section(key); state != nil && state.Estado != types.StatusApproved {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 && !approveAll {
		return fmt.Errorf("no sections given; pass section keys or --all")
	}

	for _, key := range keys {
		state := doc.Section(key)
		if state == nil {
			return &types.ErrSectionNotFound{Section: key}
		}
		if !approveToggle && state.Estado == types.StatusApproved {
			continue
		}
		if doc, err = sessions.Toggle(ctx, id, key); err != nil {
			return err
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSession(doc, catalogFor(doc))
	return nil
}
