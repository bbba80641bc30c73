// Package export serializes a session document into the Markdown, plain-text and HTML exports.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/yuin/goldmark"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	headerRule  = "========================================"
	sectionRule = "----------------------------------------"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// entry is a section present in both the catalog and the document.
type entry struct {
	section catalog.Section
	content string
}

// entries walks the catalog in order and keeps the sections the document has.
func entries(doc *types.Document, cat *catalog.Catalog) []entry {
	out := make([]entry, 0, len(cat.Sections))
	for _, sec := range cat.Sections {
		state := doc.Section(sec.Key)
		if state == nil {
			continue
		}
		out = append(out, entry{section: sec, content: state.Contenido})
	}
	return out
}

// Markdown returns the "copy all" export.
func Markdown(doc *types.Document, cat *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", doc.NombreProducto)
	fmt.Fprintf(&b, "Tipo: Landing de %s\n\n", doc.TipoLanding.Label())
	b.WriteString("---\n\n")

	for _, e := range entries(doc, cat) {
		fmt.Fprintf(&b, "## %s %s\n\n", e.section.Icono, e.section.Nombre)
		b.WriteString(e.content)
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

// PlainText returns the downloadable text export, dated with now in d/m/yyyy form.
func PlainText(doc *types.Document, cat *catalog.Catalog, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", doc.NombreProducto)
	fmt.Fprintf(&b, "Tipo: Landing de %s\n", doc.TipoLanding.Label())
	fmt.Fprintf(&b, "Generado: %d/%d/%d\n\n", now.Day(), int(now.Month()), now.Year())
	b.WriteString(headerRule)
	b.WriteString("\n\n")

	for _, e := range entries(doc, cat) {
		fmt.Fprintf(&b, "[%s]\n\n", strings.ToUpper(e.section.Nombre))
		b.WriteString(e.content)
		b.WriteString("\n\n")
		b.WriteString(sectionRule)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Filename returns the download file name for a product name.
func Filename(name string) string {
	return "landing-" + whitespaceRun.ReplaceAllString(strings.ToLower(name), "-") + ".txt"
}

// HTML renders the Markdown export as a standalone HTML document.
func HTML(doc *types.Document, cat *catalog.Catalog) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(doc, cat)), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	title := doc.NombreProducto
	if title == "" {
		title = "Landing"
	}

	page := g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(
			h.Lang("es"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(title)),
			),
			h.Body(g.Raw(body.String())),
		),
	})

	var out bytes.Buffer
	if err := page.Render(&out); err != nil {
		return "", fmt.Errorf("failed to render html export: %w", err)
	}
	return out.String(), nil
}

// SectionRaw returns the unformatted content of one section.
func SectionRaw(doc *types.Document, key string) (string, error) {
	state := doc.Section(key)
	if state == nil {
		return "", &types.ErrSectionNotFound{Section: key}
	}
	return state.Contenido, nil
}
