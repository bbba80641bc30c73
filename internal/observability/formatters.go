// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/db"
	"github.com/jonathan/landing-generator/internal/rendering"
	"github.com/jonathan/landing-generator/internal/session"
	"github.com/jonathan/landing-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// snippetLength is the number of characters shown of each section
	snippetLength = 45
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, ending with "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to the inner box width, counting runes
func pad(s string) string {
	n := boxWidth - 4 - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// PrintSession outputs a summary of a session: header, progress and one line per section.
func (p *Printer) PrintSession(doc *types.Document, cat *catalog.Catalog) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	progress := session.ComputeProgress(doc)

	sb.WriteString(fmt.Sprintf("ID:        %s\n", doc.ID))
	sb.WriteString(fmt.Sprintf("Tipo:      %s\n", doc.TipoLanding.Label()))
	sb.WriteString(fmt.Sprintf("Producto:  %s\n", doc.NombreProducto))
	sb.WriteString(fmt.Sprintf("Progreso:  %d/%d (%.0f%%)\n", progress.Approved, progress.Total, progress.Percent))
	sb.WriteString("\n")

	for _, key := range sectionOrder(doc, cat) {
		state := doc.Secciones[key]
		mark := "○"
		if state.Estado == types.StatusApproved {
			mark = "✓"
		}
		name := key
		if cat != nil {
			if sec, ok := cat.Lookup(key); ok {
				name = sec.Icono + " " + sec.Nombre
			}
		}
		sb.WriteString(fmt.Sprintf("%s %s", mark, name))
		if n := len(state.Historial); n > 0 {
			sb.WriteString(fmt.Sprintf(" (v%d)", n+1))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    %s\n", rendering.Snippet(state.Contenido, snippetLength)))
	}

	p.printBox("LANDING SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// sectionOrder lists the present sections in catalog order, followed by any keys the catalog lacks.
func sectionOrder(doc *types.Document, cat *catalog.Catalog) []string {
	var keys []string
	seen := make(map[string]bool)
	if cat != nil {
		for _, key := range cat.Keys() {
			if state, ok := doc.Secciones[key]; ok && state != nil {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	var rest []string
	for key, state := range doc.Secciones {
		if !seen[key] && state != nil {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// PrintSessionList outputs the most recent stored sessions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSessionList(sessions []db.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("No stored sessions"))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	count := min(len(sessions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sessions[i]
		sb.WriteString(fmt.Sprintf("%s  %d/%d\n", s.ID, s.Aprobadas, s.Total))
		sb.WriteString(fmt.Sprintf("    %s · %s · %s\n", s.TipoLanding.Label(), s.NombreProducto, s.UpdatedAt.Format("2006-01-02 15:04")))
	}
	if len(sessions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(sessions)-maxItemsToShow))
	}

	p.printBox("STORED SESSIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalog outputs the sections of a landing type in order.
func (p *Printer) PrintCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}

	var sb strings.Builder
	for i, sec := range cat.Sections {
		sb.WriteString(fmt.Sprintf("%2d. %s %-16s %s\n", i+1, sec.Icono, sec.Key, sec.Nombre))
	}

	p.printBox("SECCIONES: "+strings.ToUpper(cat.Type.Label()), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRegeneration outputs the new content of a regenerated section.
func (p *Printer) PrintRegeneration(doc *types.Document, key string) {
	if doc == nil {
		return
	}
	state, ok := doc.Secciones[key]
	if !ok || state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Versión: %d\n\n", len(state.Historial)+1))
	sb.WriteString(rendering.Snippet(state.Contenido, 3*snippetLength))

	p.printBox("REGENERADA: "+key, sb.String())
}
