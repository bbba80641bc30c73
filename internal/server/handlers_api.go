package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/export"
	"github.com/jonathan/landing-generator/internal/session"
	"github.com/jonathan/landing-generator/internal/types"
)

// SessionResponse is a session document with its approval progress.
type SessionResponse struct {
	Session  *types.Document  `json:"session"`
	Progress session.Progress `json:"progreso"`
}

// CatalogResponse lists the sections of a landing type.
type CatalogResponse struct {
	Tipo      types.LandingType `json:"tipo_landing"`
	Secciones []catalog.Section `json:"secciones"`
}

func newSessionResponse(doc *types.Document) SessionResponse {
	return SessionResponse{Session: doc, Progress: session.ComputeProgress(doc)}
}

// catalogFor returns the catalog of the document's type, or an empty one for an unknown type.
func catalogFor(doc *types.Document) *catalog.Catalog {
	cat, err := catalog.Get(doc.TipoLanding)
	if err != nil {
		log.Printf("[session] %s has unknown landing type %q", doc.ID, doc.TipoLanding)
		return &catalog.Catalog{Type: doc.TipoLanding}
	}
	return cat
}

// handleCatalog returns the ordered sections of a landing type
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tipo, ok := types.ParseLandingType(r.PathValue("tipo"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown landing type: "+r.PathValue("tipo"))
		return
	}
	cat, err := catalog.Get(tipo)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, CatalogResponse{Tipo: tipo, Secciones: cat.Sections})
}

// handleCreateSession generates a landing and stores the resulting session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.sessions.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err, MsgGenerationFailed)
		return
	}

	s.jsonResponse(w, http.StatusCreated, newSessionResponse(doc))
}

// generationResult carries the outcome of a background generation
type generationResult struct {
	doc *types.Document
	err error
}

// handleCreateSessionStream generates a landing and streams the loading steps via SSE
func (s *Server) handleCreateSessionStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	done := make(chan generationResult, 1)
	go func() {
		doc, err := s.sessions.Generate(ctx, req)
		done <- generationResult{doc: doc, err: err}
	}()

	steps := catalog.LoadingSteps()
	next := 0
	if len(steps) > 0 {
		if err := sse.WriteStep(next, steps); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
		next++
	}

	ticker := time.NewTicker(s.stepInterval)
	defer ticker.Stop()

	for {
		select {
		case res := <-done:
			if res.err != nil {
				log.Printf("[session] streamed generation failed: %v", res.err)
				sse.WriteError(errorMessage(res.err, MsgGenerationFailed))
				return
			}
			sse.WriteComplete(res.doc.ID)
			return
		case <-ticker.C:
			if next < len(steps) {
				if err := sse.WriteStep(next, steps); err != nil {
					log.Printf("Error writing SSE event: %v", err)
				}
				next++
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleGetSession returns a stored session and its progress
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(doc))
}

// handleDeleteSession removes a stored session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// handleToggleSection flips the approval state of a section
func (s *Server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sessions.Toggle(r.Context(), r.PathValue("id"), r.PathValue("key"))
	if err != nil {
		s.writeError(w, err, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(doc))
}

// handleRegenerateSection regenerates a section with the given instruction
func (s *Server) handleRegenerateSection(w http.ResponseWriter, r *http.Request) {
	var in types.RegenerateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.sessions.Regenerate(r.Context(), r.PathValue("id"), r.PathValue("key"), in.Instruccion)
	if err != nil {
		s.writeError(w, err, MsgRegenerationFailed)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(doc))
}

// handleSectionRaw returns the unformatted content of one section
func (s *Server) handleSectionRaw(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "")
		return
	}
	raw, err := export.SectionRaw(doc, r.PathValue("key"))
	if err != nil {
		s.writeError(w, err, "")
		return
	}
	s.textResponse(w, "text/plain; charset=utf-8", raw, "")
}

// handleExport returns the session in one of the export formats
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "")
		return
	}
	cat := catalogFor(doc)

	switch r.PathValue("format") {
	case "markdown":
		s.textResponse(w, "text/markdown; charset=utf-8", export.Markdown(doc, cat), "")
	case "text":
		s.textResponse(w, "text/plain; charset=utf-8", export.PlainText(doc, cat, s.now()), export.Filename(doc.NombreProducto))
	case "html":
		page, err := export.HTML(doc, cat)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.textResponse(w, "text/html; charset=utf-8", page, "")
	default:
		s.errorResponse(w, http.StatusBadRequest, "Unknown export format: "+r.PathValue("format"))
	}
}
