package web

import (
	"net/url"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/intake"
	"github.com/jonathan/landing-generator/internal/types"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive
)

// FormData is the generation form state, optionally re-rendered with submitted values and an error.
type FormData struct {
	Values   url.Values
	Error    string
	Notice   string
	Catalogs []*catalog.Catalog
}

// FormPage renders the generation form.
func FormPage(p FormData) g.Node {
	values := p.Values
	if values == nil {
		values = url.Values{}
	}
	mode := values.Get(intake.FieldSectionMode)
	if mode == "" {
		mode = intake.ModeAll
	}
	selected := make(map[string]bool)
	for _, key := range values[intake.FieldSecciones] {
		selected[key] = true
	}
	tipo, _ := types.ParseLandingType(values.Get(intake.FieldTipoLanding))

	return Layout("Generador de Landings",
		Header(H1(g.Text("Generador de Landings"))),
		Notice(p.Notice),
		Alert(p.Error),
		g.El("form", ID("landing-form"), Method("post"), Action("/form"),
			g.El("fieldset",
				g.El("legend", g.Text("Tipo de landing")),
				radio(intake.FieldTipoLanding, string(types.LandingProduct), types.LandingProduct.Label(), tipo == types.LandingProduct),
				radio(intake.FieldTipoLanding, string(types.LandingAggregator), types.LandingAggregator.Label(), tipo == types.LandingAggregator),
			),
			g.El("fieldset",
				g.El("legend", g.Text("Secciones")),
				radio(intake.FieldSectionMode, intake.ModeAll, "Todas las secciones", mode == intake.ModeAll),
				radio(intake.FieldSectionMode, intake.ModeSelect, "Seleccionar secciones", mode == intake.ModeSelect),
				g.Map(p.Catalogs, func(c *catalog.Catalog) g.Node {
					return Div(Class("catalog"), ID("secciones-"+string(c.Type)),
						P(Strong(g.Text(c.Type.Label()))),
						g.Map(c.Sections, func(s catalog.Section) g.Node {
							return checkbox(intake.FieldSecciones, s.Key, s.Icono+" "+s.Nombre, selected[s.Key])
						}),
					)
				}),
			),
			textField(intake.FieldNombreProducto, "Nombre del producto o agrupador", values.Get(intake.FieldNombreProducto)),
			textField(intake.FieldAudiencia, "Audiencia", values.Get(intake.FieldAudiencia)),
			textArea(intake.FieldMensajesClave, "Mensajes clave", values.Get(intake.FieldMensajesClave)),
			textArea(intake.FieldKeywords, "Keywords (una por línea)", values.Get(intake.FieldKeywords)),
			textArea(intake.FieldURLs, "URLs de referencia (una por línea)", values.Get(intake.FieldURLs)),
			textArea(intake.FieldAIOverview, "AI Overview", values.Get(intake.FieldAIOverview)),
			Button(Type("submit"), ID("btn-generar"), g.Text("Generar landing")),
		),
	)
}

func radio(name, value, label string, checked bool) g.Node {
	return g.El("label",
		Input(Type("radio"), Name(name), Value(value), g.If(checked, g.Attr("checked"))),
		g.Text(" "+label),
	)
}

func checkbox(name, value, label string, checked bool) g.Node {
	return Div(
		g.El("label",
			Input(Type("checkbox"), Name(name), Value(value), g.If(checked, g.Attr("checked"))),
			g.Text(" "+label),
		),
	)
}

func textField(name, label, value string) g.Node {
	return Div(
		g.El("label", g.Attr("for", name), g.Text(label)),
		Input(Type("text"), ID(name), Name(name), Value(value)),
	)
}

func textArea(name, label, value string) g.Node {
	return Div(
		g.El("label", g.Attr("for", name), g.Text(label)),
		g.El("textarea", ID(name), Name(name), g.Attr("rows", "3"), g.Text(value)),
	)
}
