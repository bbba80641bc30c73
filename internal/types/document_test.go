package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_UnmarshalNormalizesAliases(t *testing.T) {
	jsonInput := `{
		"id": "abc",
		"tipo_landing": "product",
		"nombre_producto": "Tarjeta Oro",
		"keywords": ["tarjeta"],
		"secciones": {
			"hero": {"contenido": "# Title", "estado": "pending"},
			"faqs": {"contenido": "x", "estado": "approved"},
			"requisitos": {"contenido": "y"}
		}
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &doc))
	assert.Equal(t, LandingProduct, doc.TipoLanding)
	assert.Equal(t, StatusPending, doc.Secciones["hero"].Estado)
	assert.Equal(t, StatusApproved, doc.Secciones["faqs"].Estado)
	assert.Equal(t, StatusPending, doc.Secciones["requisitos"].Estado)
}

func TestDocument_MarshalUsesCanonicalValues(t *testing.T) {
	doc := Document{
		ID:          "abc",
		TipoLanding: LandingAggregator,
		Secciones: map[string]*SectionState{
			"hero": {Contenido: "hola", Estado: StatusApproved},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tipo_landing":"agrupadora"`)
	assert.Contains(t, string(data), `"estado":"aprobada"`)
}

func TestDocument_Clone(t *testing.T) {
	doc := Document{
		ID:       "abc",
		Keywords: []string{"a"},
		Secciones: map[string]*SectionState{
			"hero": {Contenido: "v1", Estado: StatusPending, Historial: []Revision{{Version: 1}}},
		},
	}

	cp := doc.Clone()
	cp.Keywords[0] = "changed"
	cp.Secciones["hero"].Contenido = "v2"
	cp.Secciones["hero"].Historial = append(cp.Secciones["hero"].Historial, Revision{Version: 2})

	assert.Equal(t, "a", doc.Keywords[0])
	assert.Equal(t, "v1", doc.Secciones["hero"].Contenido)
	assert.Len(t, doc.Secciones["hero"].Historial, 1)
}

func TestStatus_Toggle(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusPending.Toggle())
	assert.Equal(t, StatusPending, StatusApproved.Toggle())
	assert.Equal(t, StatusApproved, Status("").Toggle())
}

func TestParseLandingType(t *testing.T) {
	tests := []struct {
		in     string
		want   LandingType
		wantOK bool
	}{
		{"producto", LandingProduct, true},
		{"Product", LandingProduct, true},
		{"agrupadora", LandingAggregator, true},
		{"aggregator", LandingAggregator, true},
		{"otro", LandingType("otro"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLandingType(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: nombre_producto - requerido", (&ErrValidation{Field: "nombre_producto", Message: "requerido"}).Error())
	assert.Equal(t, "session not found: abc", (&ErrSessionNotFound{ID: "abc"}).Error())
	assert.Equal(t, "section not found: hero", (&ErrSectionNotFound{Section: "hero"}).Error())
}

func TestSectionState_MissingStatusIsPending(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"secciones": {"hero": {"contenido": "# T"}}}`), &doc))
	assert.Equal(t, StatusPending, doc.Secciones["hero"].Estado)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"estado":"pendiente"`)
}

func TestDocument_UnmarshalID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `{"id": "abc"}`, "abc"},
		{"number", `{"id": 42}`, "42"},
		{"null", `{"id": null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			require.NoError(t, json.Unmarshal([]byte(tt.input), &doc))
			assert.Equal(t, tt.want, doc.ID)
		})
	}
}

func TestDocument_UnmarshalKeepsOtherFields(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "nombre_producto": "Tarjeta", "tipo_landing": "agrupadora"}`), &doc))
	assert.Equal(t, "7", doc.ID)
	assert.Equal(t, "Tarjeta", doc.NombreProducto)
	assert.Equal(t, LandingAggregator, doc.TipoLanding)
}

func TestDocument_UnmarshalInvalidID(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document id")
}
