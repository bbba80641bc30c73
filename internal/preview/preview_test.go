package preview

import (
	"testing"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_SingleHeroCard(t *testing.T) {
	doc := &types.Document{
		ID:          "s1",
		TipoLanding: types.LandingProduct,
		Secciones: map[string]*types.SectionState{
			"hero": {Contenido: "# Title", Estado: types.StatusPending},
		},
	}

	view := Build(doc, catalog.MustGet(types.LandingProduct))
	assert.Equal(t, Header{Badge: "Producto", Title: "Landing"}, view.Header)
	require.Len(t, view.Cards, 1)

	card := view.Cards[0]
	assert.Equal(t, "hero", card.Key)
	assert.Equal(t, "🎯", card.Icon)
	assert.Equal(t, "<p><h1>Title</h1></p>", card.HTML)
	assert.Equal(t, types.StatusPending, card.Status)
	assert.Equal(t, "Pendiente", card.StatusLabel)
	assert.Equal(t, ApproveLabel, card.ApproveLabel)
	assert.False(t, card.Approved)

	assert.Equal(t, 0, view.Progress.Approved)
	assert.Equal(t, 1, view.Progress.Total)
	assert.False(t, view.Progress.AllApproved)
}

func TestBuild_CatalogOrderAndFiltering(t *testing.T) {
	doc := &types.Document{
		TipoLanding:    types.LandingAggregator,
		NombreProducto: "Tarjetas",
		Secciones: map[string]*types.SectionState{
			"faqs":       {Contenido: "f", Estado: types.StatusApproved},
			"sitewide":   {Contenido: "s", Estado: types.StatusApproved},
			"definicion": {Contenido: "solo producto", Estado: types.StatusApproved},
		},
	}

	view := Build(doc, catalog.MustGet(types.LandingAggregator))
	assert.Equal(t, Header{Badge: "Agrupadora", Title: "Tarjetas"}, view.Header)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "sitewide", view.Cards[0].Key)
	assert.Equal(t, "faqs", view.Cards[1].Key)
	assert.Equal(t, ApprovedLabel, view.Cards[1].ApproveLabel)
	assert.Equal(t, "Aprobada", view.Cards[1].StatusLabel)

	// Progress counts every section of the document, rendered or not.
	assert.Equal(t, 3, view.Progress.Total)
	assert.True(t, view.Progress.AllApproved)
}

func TestBuild_EmptyContent(t *testing.T) {
	doc := &types.Document{
		TipoLanding: types.LandingProduct,
		Secciones:   map[string]*types.SectionState{"faqs": {}},
	}

	view := Build(doc, catalog.MustGet(types.LandingProduct))
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "<em>Sin contenido</em>", view.Cards[0].HTML)
}

func TestBuildDialog(t *testing.T) {
	doc := &types.Document{
		ID:          "s1",
		TipoLanding: types.LandingProduct,
		Secciones: map[string]*types.SectionState{
			"faqs": {
				Contenido: "**nuevo**",
				Historial: []types.Revision{
					{Version: 1, Contenido: "**nuevo**", Feedback: "más corto"},
				},
			},
		},
	}

	view, err := BuildDialog(doc, catalog.MustGet(types.LandingProduct), "faqs")
	require.NoError(t, err)
	assert.Equal(t, "Regenerar: FAQs / Legales", view.Title)
	assert.Equal(t, "<p><strong>nuevo</strong></p>", view.CurrentHTML)
	require.Len(t, view.Turns, 2)
	assert.Equal(t, Turn{Role: RoleUser, Text: "más corto"}, view.Turns[0])
	assert.Equal(t, RoleAssistant, view.Turns[1].Role)

	_, err = BuildDialog(doc, catalog.MustGet(types.LandingProduct), "hero")
	var notFound *types.ErrSectionNotFound
	assert.ErrorAs(t, err, &notFound)
}
