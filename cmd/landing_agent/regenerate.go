package main

import (
	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/observability"
	"github.com/spf13/cobra"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <session-id> <section>",
	Short: "Regenerate one section with an instruction",
	Long:  "Send the current content of a section and an instruction to the regeneration webhook, recording the new version in the section history.",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegenerate,
}

var regenerateInstruction string

func init() {
	regenerateCmd.Flags().StringVarP(&regenerateInstruction, "instruccion", "i", "", "What to change in the section (required)")
	_ = regenerateCmd.MarkFlagRequired("instruccion")

	rootCmd.AddCommand(regenerateCmd)
}

func runRegenerate(cmd *cobra.Command, args []string) error {
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

	doc, err := sessions.Regenerate(ctx, args[0], args[1], regenerateInstruction)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRegeneration(doc, args[1])
	return nil
}
