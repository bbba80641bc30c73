package server

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/export"
	"github.com/jonathan/landing-generator/internal/intake"
	"github.com/jonathan/landing-generator/internal/preview"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/jonathan/landing-generator/internal/web"
	g "maragu.dev/gomponents"
)

// SessionCookie remembers the last generated session of a browser.
const SessionCookie = "landing_session"

// missingSessionURL is where pages redirect when the session cannot be found.
const missingSessionURL = "/?aviso=sin-sesion"

// render writes a page with the given status code.
func (s *Server) render(w http.ResponseWriter, status int, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

func allCatalogs() []*catalog.Catalog {
	return []*catalog.Catalog{
		catalog.MustGet(types.LandingProduct),
		catalog.MustGet(types.LandingAggregator),
	}
}

// handleFormPage renders the generation form
func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	data := web.FormData{Catalogs: allCatalogs()}
	if r.URL.Query().Get("aviso") == "sin-sesion" {
		data.Notice = MsgSessionMissing
	}
	s.render(w, http.StatusOK, web.FormPage(data))
}

// handleFormSubmit collects the form, generates the landing and redirects to its preview
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, web.FormPage(web.FormData{Error: err.Error(), Catalogs: allCatalogs()}))
		return
	}

	req := intake.Collect(r.PostForm, s.now())
	doc, err := s.sessions.Generate(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		message := errorMessage(err, MsgGenerationFailed)
		if status == http.StatusInternalServerError {
			message = MsgGenerationFailed
		}
		s.render(w, status, web.FormPage(web.FormData{
			Values:   r.PostForm,
			Error:    message,
			Catalogs: allCatalogs(),
		}))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    doc.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/preview/"+url.PathEscape(doc.ID), http.StatusSeeOther)
}

// handlePreviewFromCookie redirects to the preview of the browser's last session
func (s *Server) handlePreviewFromCookie(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, missingSessionURL, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/preview/"+url.PathEscape(cookie.Value), http.StatusSeeOther)
}

// loadForPage loads a session for a page handler. It redirects to the form when the
// session is missing and reports whether the caller should continue.
func (s *Server) loadForPage(w http.ResponseWriter, r *http.Request) (*types.Document, bool) {
	doc, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		var notFound *types.ErrSessionNotFound
		if errors.As(err, &notFound) {
			http.Redirect(w, r, missingSessionURL, http.StatusSeeOther)
			return nil, false
		}
		http.Error(w, err.Error(), HTTPStatus(err))
		return nil, false
	}
	return doc, true
}

// handlePreviewPage renders the preview of a session
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadForPage(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, web.PreviewPage(preview.Build(doc, catalogFor(doc)), ""))
}

// handlePreviewToggle flips a section's approval and returns to the preview
func (s *Server) handlePreviewToggle(w http.ResponseWriter, r *http.Request) {
	id, key := r.PathValue("id"), r.PathValue("key")
	if _, err := s.sessions.Toggle(r.Context(), id, key); err != nil {
		s.pageError(w, r, err)
		return
	}
	http.Redirect(w, r, "/preview/"+url.PathEscape(id)+"#seccion-"+key, http.StatusSeeOther)
}

// handleDialogPage renders the regeneration dialog of a section
func (s *Server) handleDialogPage(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadForPage(w, r)
	if !ok {
		return
	}
	view, err := preview.BuildDialog(doc, catalogFor(doc), r.PathValue("key"))
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, http.StatusOK, web.DialogPage(view, ""))
}

// handleDialogSubmit sends the instruction to the regeneration webhook.
// On success the dialog is shown again with the new version; on failure the document is unchanged.
func (s *Server) handleDialogSubmit(w http.ResponseWriter, r *http.Request) {
	id, key := r.PathValue("id"), r.PathValue("key")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	instruction := r.PostForm.Get("instruccion")

	if _, err := s.sessions.Regenerate(r.Context(), id, key, instruction); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusNotFound {
			s.pageError(w, r, err)
			return
		}

		doc, ok := s.loadForPage(w, r)
		if !ok {
			return
		}
		view, buildErr := preview.BuildDialog(doc, catalogFor(doc), key)
		if buildErr != nil {
			s.pageError(w, r, buildErr)
			return
		}
		view.Error = errorMessage(err, MsgRegenerationFailed)
		if status == http.StatusInternalServerError {
			view.Error = MsgRegenerationFailed
		}
		s.render(w, status, web.DialogPage(view, instruction))
		return
	}

	http.Redirect(w, r, "/preview/"+url.PathEscape(id)+"/sections/"+url.PathEscape(key)+"/regenerate", http.StatusSeeOther)
}

// handleDownload sends the plain-text export as a file
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadForPage(w, r)
	if !ok {
		return
	}
	s.textResponse(w, "text/plain; charset=utf-8",
		export.PlainText(doc, catalogFor(doc), s.now()),
		export.Filename(doc.NombreProducto))
}

// pageError redirects to the form for a missing session and writes a plain error otherwise.
func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *types.ErrSessionNotFound
	if errors.As(err, &notFound) {
		http.Redirect(w, r, missingSessionURL, http.StatusSeeOther)
		return
	}
	http.Error(w, err.Error(), HTTPStatus(err))
}
