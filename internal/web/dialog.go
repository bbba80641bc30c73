package web

import (
	"net/url"

	"github.com/jonathan/landing-generator/internal/preview"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive
)

// DialogPage renders the regeneration page of one section.
func DialogPage(v preview.DialogView, instruction string) g.Node {
	base := "/preview/" + url.PathEscape(v.SessionID)

	return Layout(v.Title,
		Header(H1(ID("modal-titulo"), g.Text(v.Title))),
		Section(Class("card"),
			H2(g.Text("Versión actual")),
			Div(ID("contenido-actual"), g.Raw(v.CurrentHTML)),
		),
		g.If(len(v.Turns) > 0,
			Section(ID("chat"), Class("chat"),
				g.Map(v.Turns, func(t preview.Turn) g.Node {
					if t.Role == preview.RoleUser {
						return P(Class("user"), g.Text(t.Text))
					}
					return Div(Class("assistant"), g.Raw(t.HTML))
				}),
			),
		),
		Alert(v.Error),
		postForm(base+"/sections/"+url.PathEscape(v.Key)+"/regenerate",
			g.El("label", g.Attr("for", "instruccion"), g.Text("¿Qué querés cambiar?")),
			g.El("textarea", ID("instruccion"), Name("instruccion"), g.Attr("rows", "4"), g.Text(instruction)),
			Button(Type("submit"), ID("btn-enviar"), g.Text("Regenerar")),
		),
		P(A(ID("btn-usar-version"), Href(base), g.Text("Usar versión actual"))),
	)
}
