package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/db"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleDocument() *types.Document {
	return &types.Document{
		ID:             "s1",
		TipoLanding:    types.LandingProduct,
		NombreProducto: "Tarjeta Oro",
		Secciones: map[string]*types.SectionState{
			"faqs": {Contenido: "- ¿Costo? Ninguno", Estado: types.StatusApproved},
			"hero": {
				Contenido: "# Tu tarjeta\n\nSin costo de emisión",
				Estado:    types.StatusPending,
				Historial: []types.Revision{{Version: 1, Contenido: "# Vieja"}},
			},
			"custom": {Contenido: "extra", Estado: types.StatusPending},
		},
	}
}

func TestPrintSession(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSession(sampleDocument(), catalog.MustGet(types.LandingProduct))
	output := buf.String()

	assert.Contains(t, output, "LANDING SESSION")
	assert.Contains(t, output, "Tarjeta Oro")
	assert.Contains(t, output, "1/3 (33%)")
	assert.Contains(t, output, "○ 🎯 Hero (v2)")
	assert.Contains(t, output, "✓ ❓ FAQs / Legales")
	assert.Contains(t, output, "Tu tarjeta Sin costo de emisión")

	hero := strings.Index(output, "Hero")
	faqs := strings.Index(output, "FAQs")
	custom := strings.Index(output, "custom")
	assert.Less(t, hero, faqs, "catalog order")
	assert.Less(t, faqs, custom, "unknown keys last")
}

func TestPrintSession_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSession(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintSession_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	doc := sampleDocument()
	doc.NombreProducto = strings.Repeat("ñ", 120)

	NewPrinter(&buf).PrintSession(doc, nil)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestPrintSessionList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSessionList([]db.SessionSummary{
		{ID: "s1", TipoLanding: types.LandingAggregator, NombreProducto: "Tarjetas", Aprobadas: 2, Total: 9, UpdatedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
	})
	output := buf.String()

	assert.Contains(t, output, "STORED SESSIONS")
	assert.Contains(t, output, "s1  2/9")
	assert.Contains(t, output, "Agrupadora · Tarjetas · 2024-03-05 10:30")
}

func TestPrintSessionList_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSessionList(nil)
	assert.Contains(t, buf.String(), "No stored sessions")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCatalog(catalog.MustGet(types.LandingAggregator))
	output := buf.String()

	assert.Contains(t, output, "SECCIONES: AGRUPADORA")
	assert.Contains(t, output, " 1. ")
	assert.Contains(t, output, "sitewide")
}

func TestPrintRegeneration(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRegeneration(sampleDocument(), "hero")
	assert.Contains(t, buf.String(), "REGENERADA: hero")
	assert.Contains(t, buf.String(), "Versión: 2")

	buf.Reset()
	p.PrintRegeneration(sampleDocument(), "missing")
	assert.Empty(t, buf.String())
}
