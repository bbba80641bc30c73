// Package intake collects the generation form into a webhook request and runs the presence checks
// that must pass before any network call is made.
package intake

import (
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/types"
)

// Section selection modes of the form
const (
	ModeAll    = "todas"
	ModeSelect = "seleccionar"
)

// Form field names
const (
	FieldTipoLanding    = "tipo_landing"
	FieldSectionMode    = "section_mode"
	FieldSecciones      = "secciones"
	FieldNombreProducto = "nombre_producto"
	FieldAudiencia      = "audiencia"
	FieldMensajesClave  = "mensajes_clave"
	FieldKeywords       = "keywords"
	FieldURLs           = "urls_referencia"
	FieldAIOverview     = "ai_overview"
)

// Collect builds a generation request from submitted form values.
func Collect(values url.Values, now time.Time) types.GenerationRequest {
	tipo, _ := types.ParseLandingType(values.Get(FieldTipoLanding))
	if strings.TrimSpace(values.Get(FieldTipoLanding)) == "" {
		tipo = ""
	}

	var sections []string
	if values.Get(FieldSectionMode) == ModeSelect {
		sections = append(sections, values[FieldSecciones]...)
	} else if cat, err := catalog.Get(tipo); err == nil {
		sections = cat.Keys()
	}

	return Normalize(types.GenerationRequest{
		TipoLanding:          tipo,
		SeccionesSolicitadas: sections,
		NombreProducto:       values.Get(FieldNombreProducto),
		Audiencia:            values.Get(FieldAudiencia),
		MensajesClave:        values.Get(FieldMensajesClave),
		Keywords:             SplitLines(values.Get(FieldKeywords)),
		URLsReferencia:       SplitLines(values.Get(FieldURLs)),
		AIOverview:           values.Get(FieldAIOverview),
	}, now)
}

// Normalize trims free-text fields, drops empty keywords and invalid reference URLs,
// and stamps the request when it carries no timestamp.
func Normalize(req types.GenerationRequest, now time.Time) types.GenerationRequest {
	req.NombreProducto = strings.TrimSpace(req.NombreProducto)
	req.Audiencia = strings.TrimSpace(req.Audiencia)
	req.MensajesClave = strings.TrimSpace(req.MensajesClave)
	req.AIOverview = strings.TrimSpace(req.AIOverview)

	keywords := make([]string, 0, len(req.Keywords))
	for _, k := range req.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	req.Keywords = keywords

	urls := make([]string, 0, len(req.URLsReferencia))
	for _, u := range req.URLsReferencia {
		if u = strings.TrimSpace(u); u != "" && IsValidURL(u) {
			urls = append(urls, u)
		}
	}
	req.URLsReferencia = urls

	if req.SeccionesSolicitadas == nil {
		req.SeccionesSolicitadas = []string{}
	}
	if req.Timestamp == "" {
		req.Timestamp = now.UTC().Format(time.RFC3339)
	}
	return req
}

// SplitLines splits a textarea value into trimmed, non-empty lines.
func SplitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// IsValidURL reports whether s is an absolute URL with a scheme and a host.
func IsValidURL(s string) bool {
	parsed, err := url.Parse(s)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
