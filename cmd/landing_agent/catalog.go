package main

import (
	"fmt"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/observability"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [tipo]",
	Short: "List the sections of a landing type",
	Long:  "List the sections of a landing type in display order. Without an argument both types are listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if len(args) == 0 {
		printer.PrintCatalog(catalog.MustGet(types.LandingProduct))
		printer.PrintCatalog(catalog.MustGet(types.LandingAggregator))
		return nil
	}

	tipo, ok := types.ParseLandingType(args[0])
	if !ok {
		return fmt.Errorf("unknown landing type %q (use producto or agrupadora)", args[0])
	}
	cat, err := catalog.Get(tipo)
	if err != nil {
		return err
	}
	printer.PrintCatalog(cat)
	return nil
}
