// Package preview projects a session document onto the view model of the preview page
// and the regeneration dialog. It is pure: no I/O, no HTML templates.
package preview

import (
	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/rendering"
	"github.com/jonathan/landing-generator/internal/session"
	"github.com/jonathan/landing-generator/internal/types"
)

// Approve button labels
const (
	ApproveLabel  = "Aprobar"
	ApprovedLabel = "✓ Aprobada"
)

// Header is the top of the preview page.
type Header struct {
	Badge string
	Title string
}

// Card is one rendered section.
type Card struct {
	Key          string
	Icon         string
	Name         string
	HTML         string
	Status       types.Status
	StatusLabel  string
	ApproveLabel string
	Approved     bool
	Revisions    int
}

// View is everything the preview page shows.
type View struct {
	SessionID string
	Tipo      types.LandingType
	Header    Header
	Cards     []Card
	Progress  session.Progress
}

// Build renders the cards of every section present in both the catalog and the document,
// in catalog order.
func Build(doc *types.Document, cat *catalog.Catalog) View {
	view := View{
		SessionID: doc.ID,
		Tipo:      doc.TipoLanding,
		Header:    BuildHeader(doc),
		Progress:  session.ComputeProgress(doc),
	}

	for _, sec := range cat.Sections {
		state := doc.Section(sec.Key)
		if state == nil {
			continue
		}
		view.Cards = append(view.Cards, buildCard(sec, state))
	}
	return view
}

// BuildHeader returns the type badge and the title, falling back to "Landing" for an empty name.
func BuildHeader(doc *types.Document) Header {
	title := doc.NombreProducto
	if title == "" {
		title = "Landing"
	}
	return Header{Badge: doc.TipoLanding.Label(), Title: title}
}

func buildCard(sec catalog.Section, state *types.SectionState) Card {
	approved := state.Estado == types.StatusApproved
	label := ApproveLabel
	if approved {
		label = ApprovedLabel
	}
	return Card{
		Key:          sec.Key,
		Icon:         sec.Icono,
		Name:         sec.Nombre,
		HTML:         rendering.FormatContent(state.Contenido),
		Status:       state.Estado,
		StatusLabel:  state.Estado.Label(),
		ApproveLabel: label,
		Approved:     approved,
		Revisions:    len(state.Historial),
	}
}
