package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// StepEvent reports a loading step of a running generation.
type StepEvent struct {
	Step     int     `json:"paso"`
	Total    int     `json:"total"`
	Message  string  `json:"mensaje"`
	Progress float64 `json:"progreso"`
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStep sends the i-th (zero-based) loading step out of steps.
func (s *SSEWriter) WriteStep(i int, steps []string) error {
	return s.WriteEvent("step", StepEvent{
		Step:     i + 1,
		Total:    len(steps),
		Message:  steps[i],
		Progress: float64(i+1) / float64(len(steps)) * 100,
	})
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the completion event with the new session id and its preview URL.
func (s *SSEWriter) WriteComplete(sessionID string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"id":      sessionID,
		"preview": "/preview/" + sessionID,
	})
}
