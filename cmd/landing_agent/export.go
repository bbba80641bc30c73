package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/export"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session as Markdown, plain text or HTML",
	Long: `Export every section of a session in catalog order.
With --out each format is written to a file in that directory; otherwise a single format is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportFormat string
	exportOutDir string
)

// exportExtensions maps each format to its file extension
var exportExtensions = map[string]string{
	"markdown": ".md",
	"text":     ".txt",
	"html":     ".html",
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Comma-separated formats: markdown, text, html")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "Directory to write the exported files to")

	rootCmd.AddCommand(exportCmd)
}

// renderExport produces one export format of a document.
func renderExport(format string, doc *types.Document, cat *catalog.Catalog, now time.Time) (string, error) {
	switch format {
	case "markdown":
		return export.Markdown(doc, cat), nil
	case "text":
		return export.PlainText(doc, cat, now), nil
	case "html":
		return export.HTML(doc, cat)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// exportPath returns the output file of a format, named after the product like the download.
func exportPath(dir, format string, doc *types.Document) string {
	base := strings.TrimSuffix(export.Filename(doc.NombreProducto), ".txt")
	return filepath.Join(dir, base+exportExtensions[format])
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	exportFormats := strings.Split(exportFormat, ",")
	for i, format := range exportFormats {
		format = strings.TrimSpace(format)
		exportFormats[i] = format
		if _, ok := exportExtensions[format]; !ok {
			return fmt.Errorf("unknown export format %q", format)
		}
	}
	if exportOutDir == "" && len(exportFormats) != 1 {
		return fmt.Errorf("exporting several formats requires --out")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
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
	cat := catalogFor(doc)
	now := time.Now()

	if exportOutDir == "" {
		content, err := renderExport(exportFormats[0], doc, cat, now)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), content)
		return err
	}

	if err := os.MkdirAll(exportOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(exportFormats))
	g, _ := errgroup.WithContext(ctx)
	for i, format := range exportFormats {
		g.Go(func() error {
			content, err := renderExport(format, doc, cat, now)
			if err != nil {
				return err
			}
			paths[i] = exportPath(exportOutDir, format, doc)
			if err := os.WriteFile(paths[i], []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s export: %w", format, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
