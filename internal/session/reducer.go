// Package session holds the approval and regeneration state machine of a session document,
// the stores that persist it and the service that ties both to the webhooks.
package session

import (
	"time"

	"github.com/jonathan/landing-generator/internal/types"
)

// Action is a state transition applied to a document by Reduce.
type Action interface {
	apply(doc *types.Document) error
}

// ToggleApproval flips a section between pending and approved.
type ToggleApproval struct {
	Section string
}

func (a ToggleApproval) apply(doc *types.Document) error {
	sec := doc.Section(a.Section)
	if sec == nil {
		return &types.ErrSectionNotFound{Section: a.Section}
	}
	sec.Estado = sec.Estado.Toggle()
	return nil
}

// ApplyRegeneration stores the content returned by the regeneration webhook.
// The section goes back to pending and a revision is appended.
type ApplyRegeneration struct {
	Section     string
	Content     string
	Instruction string
	At          time.Time
}

func (a ApplyRegeneration) apply(doc *types.Document) error {
	sec := doc.Section(a.Section)
	if sec == nil {
		return &types.ErrSectionNotFound{Section: a.Section}
	}
	sec.Contenido = a.Content
	sec.Estado = types.StatusPending
	sec.Historial = append(sec.Historial, types.Revision{
		Version:   len(sec.Historial) + 1,
		Contenido: a.Content,
		Feedback:  a.Instruction,
		Timestamp: a.At.UTC().Format(time.RFC3339),
	})
	return nil
}

// Reduce returns the document that results from applying the action.
// The input document is never modified; on error the zero document is returned.
func Reduce(doc types.Document, action Action) (types.Document, error) {
	next := doc.Clone()
	if err := action.apply(&next); err != nil {
		return types.Document{}, err
	}
	return next, nil
}
