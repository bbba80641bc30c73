package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/intake"
	"github.com/jonathan/landing-generator/internal/observability"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a landing from a product brief",
	Long: `Send a product brief to the generation webhook and store the resulting session.
Without --secciones every section of the landing type is requested.`,
	RunE: runGenerate,
}

var (
	generateTipo       string
	generateSecciones  []string
	generateNombre     string
	generateAudiencia  string
	generateMensajes   string
	generateKeywords   []string
	generateURLs       []string
	generateAIOverview string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTipo, "tipo", "t", "", "Landing type: producto or agrupadora (required)")
	generateCmd.Flags().StringSliceVarP(&generateSecciones, "secciones", "s", nil, "Section keys to generate (default: all)")
	generateCmd.Flags().StringVarP(&generateNombre, "nombre", "n", "", "Product or aggregator name (required)")
	generateCmd.Flags().StringVar(&generateAudiencia, "audiencia", "", "Target audience")
	generateCmd.Flags().StringVar(&generateMensajes, "mensajes", "", "Key messages")
	generateCmd.Flags().StringSliceVarP(&generateKeywords, "keywords", "k", nil, "SEO keywords")
	generateCmd.Flags().StringSliceVar(&generateURLs, "urls", nil, "Reference URLs; invalid ones are dropped")
	generateCmd.Flags().StringVar(&generateAIOverview, "ai-overview", "", "AI overview text")

	rootCmd.AddCommand(generateCmd)
}

// generateValues maps the flags onto the same fields the web form submits.
func generateValues() url.Values {
	values := url.Values{}
	values.Set(intake.FieldTipoLanding, generateTipo)
	values.Set(intake.FieldNombreProducto, generateNombre)
	values.Set(intake.FieldAudiencia, generateAudiencia)
	values.Set(intake.FieldMensajesClave, generateMensajes)
	values.Set(intake.FieldKeywords, strings.Join(generateKeywords, "\n"))
	values.Set(intake.FieldURLs, strings.Join(generateURLs, "\n"))
	values.Set(intake.FieldAIOverview, generateAIOverview)

	if len(generateSecciones) > 0 {
		values.Set(intake.FieldSectionMode, intake.ModeSelect)
		values[intake.FieldSecciones] = generateSecciones
	} else {
		values.Set(intake.FieldSectionMode, intake.ModeAll)
	}
	return values
}

func runGenerate(cmd *cobra.Command, _ []string) error {
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

	req := intake.Collect(generateValues(), time.Now())
	doc, err := sessions.Generate(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintSession(doc, catalogFor(doc))
	_, _ = fmt.Fprintf(out, "Session: %s\n", doc.ID)
	return nil
}
