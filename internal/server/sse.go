package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/cv-genie/internal/builder"
)

// retryMillis is the reconnect delay suggested to clients
const retryMillis = 3000

// SSEWriter streams session events as Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sends the stream headers and the retry hint.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "retry: %d\n\n", retryMillis); err != nil {
		return nil, err
	}
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Send writes a session event. The session version becomes the event id.
func (s *SSEWriter) Send(ev builder.Event) error {
	return s.write(strconv.FormatUint(ev.Version, 10), string(ev.Type), ev)
}

// WriteEvent writes an event that carries no id.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	return s.write("", event, data)
}

// WriteComment sends a comment line, used as a keep-alive.
func (s *SSEWriter) WriteComment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *SSEWriter) write(id, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	var b strings.Builder
	if id != "" {
		b.WriteString("id: " + id + "\n")
	}
	b.WriteString("event: " + event + "\n")
	b.WriteString("data: ")
	b.Write(payload)
	b.WriteString("\n\n")

	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
