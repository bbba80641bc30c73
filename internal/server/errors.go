package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/landing-generator/internal/schemas"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/jonathan/landing-generator/internal/webhook"
)

// User-facing failure messages
const (
	MsgGenerationFailed   = "Ocurrió un error al generar la landing. Por favor, intentá de nuevo."
	MsgRegenerationFailed = "❌ Ocurrió un error al regenerar. Por favor, intentá de nuevo."
	MsgSessionMissing     = "No hay datos de sesión. Redirigiendo al formulario..."
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *types.ErrValidation
		sessionErr    *types.ErrSessionNotFound
		sectionErr    *types.ErrSectionNotFound
		hookErr       *webhook.Error
		schemaErr     *schemas.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &sessionErr), errors.As(err, &sectionErr):
		return http.StatusNotFound
	case errors.As(err, &hookErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the text sent to the client for err.
// Validation errors carry their own message; webhook failures use fallback.
func errorMessage(err error, fallback string) string {
	var validationErr *types.ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if fallback != "" && HTTPStatus(err) == http.StatusBadGateway {
		return fallback
	}
	return err.Error()
}

// writeError maps err to a status and writes the JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error, fallback string) {
	s.errorResponse(w, HTTPStatus(err), errorMessage(err, fallback))
}
