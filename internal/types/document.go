// Package types provides type definitions for structured data used throughout the landing generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LandingType selects which section catalog and ordering applies to a document.
type LandingType string

const (
	// LandingProduct is a single-product landing page
	LandingProduct LandingType = "producto"
	// LandingAggregator groups several products on one page
	LandingAggregator LandingType = "agrupadora"
)

// ParseLandingType normalizes a landing type, accepting the English aliases.
// The second return value is false when the input is not a known type.
func ParseLandingType(s string) (LandingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "producto", "product":
		return LandingProduct, true
	case "agrupadora", "aggregator":
		return LandingAggregator, true
	default:
		return LandingType(s), false
	}
}

// Label returns the human-readable badge text for the landing type.
func (t LandingType) Label() string {
	if t == LandingProduct {
		return "Producto"
	}
	return "Agrupadora"
}

// UnmarshalJSON accepts both the canonical values and their English aliases.
func (t *LandingType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t, _ = ParseLandingType(s)
	return nil
}

// Status is the approval state of a section.
type Status string

const (
	// StatusPending marks a section waiting for review
	StatusPending Status = "pendiente"
	// StatusApproved marks a section accepted by the reviewer
	StatusApproved Status = "aprobada"
)

// ParseStatus normalizes a status. Only an explicit approval yields StatusApproved.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aprobada", "approved":
		return StatusApproved
	default:
		return StatusPending
	}
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusApproved {
		return StatusPending
	}
	return StatusApproved
}

// Label returns the text shown on the status badge.
func (s Status) Label() string {
	if s == StatusApproved {
		return "Aprobada"
	}
	return "Pendiente"
}

// UnmarshalJSON normalizes aliases and unknown values.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Revision is one entry of a section's regeneration history.
type Revision struct {
	Version   int    `json:"version"`
	Contenido string `json:"contenido"`
	Feedback  string `json:"feedback"`
	Timestamp string `json:"timestamp"`
}

// SectionState holds the generated text of a section and its review state.
type SectionState struct {
	Contenido string     `json:"contenido"`
	Estado    Status     `json:"estado"`
	Historial []Revision `json:"historial,omitempty"`
}

// UnmarshalJSON decodes a section, treating a missing estado as pending.
func (s *SectionState) UnmarshalJSON(data []byte) error {
	type sectionState SectionState
	var aux sectionState
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Estado == "" {
		aux.Estado = StatusPending
	}
	*s = SectionState(aux)
	return nil
}

// Document is the session document returned by the generation webhook and
// mutated by approvals and regenerations.
type Document struct {
	ID             string                   `json:"id"`
	TipoLanding    LandingType              `json:"tipo_landing"`
	NombreProducto string                   `json:"nombre_producto"`
	Audiencia      string                   `json:"audiencia,omitempty"`
	MensajesClave  string                   `json:"mensajes_clave,omitempty"`
	Keywords       []string                 `json:"keywords"`
	URLsReferencia []string                 `json:"urls_referencia"`
	AIOverview     string                   `json:"ai_overview,omitempty"`
	Secciones      map[string]*SectionState `json:"secciones"`
	CreatedAt      *time.Time               `json:"created_at,omitempty"`
}

// UnmarshalJSON decodes a document. The webhook may send the id as a JSON number;
// it is kept as its decimal text.
func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document
	aux := struct {
		ID json.RawMessage `json:"id"`
		*document
	}{document: (*document)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.ID = ""
	if len(aux.ID) == 0 {
		return nil
	}
	var id string
	if err := json.Unmarshal(aux.ID, &id); err == nil {
		d.ID = id
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(aux.ID, &num); err != nil {
		return fmt.Errorf("invalid document id %s: %w", aux.ID, err)
	}
	d.ID = num.String()
	return nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Keywords = append([]string(nil), d.Keywords...)
	out.URLsReferencia = append([]string(nil), d.URLsReferencia...)
	if d.CreatedAt != nil {
		t := *d.CreatedAt
		out.CreatedAt = &t
	}
	if d.Secciones != nil {
		out.Secciones = make(map[string]*SectionState, len(d.Secciones))
		for key, sec := range d.Secciones {
			if sec == nil {
				continue
			}
			cp := *sec
			cp.Historial = append([]Revision(nil), sec.Historial...)
			out.Secciones[key] = &cp
		}
	}
	return out
}

// Section returns the state for a section key, or nil when the document lacks it.
func (d *Document) Section(key string) *SectionState {
	if d.Secciones == nil {
		return nil
	}
	return d.Secciones[key]
}
