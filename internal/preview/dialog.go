package preview

import (
	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/rendering"
	"github.com/jonathan/landing-generator/internal/types"
)

// Chat roles of a dialog turn
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of the regeneration chat.
type Turn struct {
	Role string
	Text string
	HTML string
}

// DialogView is the regeneration dialog for one section.
type DialogView struct {
	SessionID   string
	Key         string
	Title       string
	CurrentHTML string
	Turns       []Turn
	Error       string
}

// BuildDialog projects one section into the regeneration dialog.
// Each revision contributes the instruction as a user turn and the returned content as an assistant turn.
func BuildDialog(doc *types.Document, cat *catalog.Catalog, key string) (DialogView, error) {
	state := doc.Section(key)
	if state == nil {
		return DialogView{}, &types.ErrSectionNotFound{Section: key}
	}

	name := key
	if sec, ok := cat.Lookup(key); ok {
		name = sec.Nombre
	}

	view := DialogView{
		SessionID:   doc.ID,
		Key:         key,
		Title:       "Regenerar: " + name,
		CurrentHTML: rendering.FormatContent(state.Contenido),
	}
	for _, rev := range state.Historial {
		if rev.Feedback != "" {
			view.Turns = append(view.Turns, Turn{Role: RoleUser, Text: rev.Feedback})
		}
		view.Turns = append(view.Turns, Turn{
			Role: RoleAssistant,
			Text: rev.Contenido,
			HTML: rendering.FormatContent(rev.Contenido),
		})
	}
	return view, nil
}
