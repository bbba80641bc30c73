package types

import "fmt"

// ErrValidation indicates a missing or malformed input field
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates no document is stored under the id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrSectionNotFound indicates the document has no section with the key
type ErrSectionNotFound struct {
	Section string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found: %s", e.Section)
}
