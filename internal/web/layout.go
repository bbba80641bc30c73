// Package web renders the server-side HTML pages with gomponents.
// Pages receive ready-made view models; they hold no business logic.
package web

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive
)

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7fb;color:#1f2330}
main{max-width:960px;margin:0 auto;padding:24px}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;background:#e3e8ff;font-size:.8rem}
.status-pendiente{background:#fff3cd}.status-aprobada{background:#d1f2dc}
.card{background:#fff;border-radius:8px;padding:16px;margin:16px 0;box-shadow:0 1px 3px #0002}
.card.aprobada{border-left:4px solid #2f9e44}
.alert{padding:12px;border-radius:6px;background:#ffe3e3;margin:12px 0}
.notice{padding:12px;border-radius:6px;background:#e7f5ff;margin:12px 0}
.banner{padding:12px;border-radius:6px;background:#d3f9d8;margin:12px 0}
.chat .user{text-align:right}.chat .assistant{background:#f1f3f5;padding:8px;border-radius:6px}
.actions form{display:inline}
`

// Layout wraps page content in the common document shell.
func Layout(title string, content ...g.Node) g.Node {
	if title == "" {
		title = "Generador de Landings"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("es"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				g.El("style", g.Raw(styles)),
			),
			Body(
				Main(g.Group(content)),
			),
		),
	})
}

// Alert renders an error message box, or nothing for an empty message.
func Alert(message string) g.Node {
	return g.If(message != "", Div(Class("alert"), g.Attr("role", "alert"), g.Text(message)))
}

// Notice renders an informational message box, or nothing for an empty message.
func Notice(message string) g.Node {
	return g.If(message != "", Div(Class("notice"), g.Text(message)))
}

func postForm(action string, children ...g.Node) g.Node {
	return g.El("form", Method("post"), Action(action), g.Group(children))
}
