package web

import (
	"fmt"
	"net/url"

	"github.com/jonathan/landing-generator/internal/preview"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive
)

// PreviewPage renders the preview page of a session.
func PreviewPage(v preview.View, notice string) g.Node {
	id := url.PathEscape(v.SessionID)
	base := "/preview/" + id
	api := "/api/sessions/" + id

	return Layout(v.Header.Title,
		Header(
			Span(ID("badge-tipo"), Class("badge"), g.Text(v.Header.Badge)),
			H1(ID("titulo"), g.Text(v.Header.Title)),
		),
		Notice(notice),
		Section(ID("progreso"),
			P(
				Span(ID("secciones-aprobadas"), g.Textf("%d", v.Progress.Approved)),
				g.Text(" de "),
				Span(ID("secciones-total"), g.Textf("%d", v.Progress.Total)),
				g.Text(" secciones aprobadas"),
			),
			g.El("progress", g.Attr("max", "100"), g.Attr("value", fmt.Sprintf("%.0f", v.Progress.Percent))),
		),
		g.If(v.Progress.AllApproved,
			Div(ID("acciones-finales"), Class("banner actions"),
				P(g.Text("¡Todas las secciones están aprobadas!")),
				A(ID("btn-copiar-todo"), Href(api+"/export/markdown"), g.Text("Copiar todo")),
				g.Text(" "),
				A(ID("btn-descargar"), Href(base+"/download"), g.Text("Descargar")),
				g.Text(" "),
				A(Href(api+"/export/html"), g.Text("Exportar HTML")),
			),
		),
		Div(ID("secciones"),
			g.Map(v.Cards, func(c preview.Card) g.Node {
				return card(base, api, c)
			}),
		),
		P(A(Href("/"), g.Text("Nueva landing"))),
	)
}

func card(base, api string, c preview.Card) g.Node {
	key := url.PathEscape(c.Key)
	sectionPath := base + "/sections/" + key
	classes := "card"
	if c.Approved {
		classes += " aprobada"
	}

	return Article(ID("seccion-"+c.Key), Class(classes), g.Attr("data-seccion", c.Key),
		Header(
			H2(Span(Class("icono"), g.Text(c.Icon)), g.Text(" "+c.Name)),
			Span(Class("status-badge status-"+string(c.Status)), g.Text(c.StatusLabel)),
			g.If(c.Revisions > 0, Span(Class("revisiones"), g.Textf(" %d regeneraciones", c.Revisions))),
		),
		Div(Class("contenido"), g.Raw(c.HTML)),
		Div(Class("actions"),
			postForm(sectionPath+"/toggle",
				Button(Type("submit"), Class("btn-aprobar"), g.Text(c.ApproveLabel)),
			),
			g.Text(" "),
			A(Class("btn-regenerar"), Href(sectionPath+"/regenerate"), g.Text("Regenerar")),
			g.Text(" "),
			A(Class("btn-copiar"), Href(api+"/sections/"+key+"/raw"), g.Text("Copiar")),
		),
	)
}
