// Package builder owns the editing state of one CV: the record, the chosen
// template, the export status and the user-facing notifications.
package builder

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/editing"
	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/types"
)

// ErrExportInProgress is returned when an export is requested while another
// export of the same session is still running.
var ErrExportInProgress = errors.New("export already in progress")

// subscriberBuffer is the per-subscriber channel capacity. Events that do
// not fit are dropped; a subscriber only needs to know that something changed.
const subscriberBuffer = 8

// Session holds the state of one CV being edited. All methods are safe for
// concurrent use. The record is replaced, never mutated, on every change.
type Session struct {
	ID uuid.UUID

	registry *rendering.Registry
	logger   *zap.Logger

	mu            sync.Mutex
	record        types.Record
	template      string
	exporting     bool
	notifications []Notification
	version       uint64
	updatedAt     time.Time
	subscribers   map[chan Event]struct{}
	closed        bool
}

// View is a point-in-time copy of a session's state.
type View struct {
	ID            uuid.UUID      `json:"id"`
	Record        types.Record   `json:"record"`
	Template      string         `json:"template"`
	Exporting     bool           `json:"exporting"`
	Notifications []Notification `json:"notifications"`
	Version       uint64         `json:"version"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewSession creates a session for r using the registry's default template.
func NewSession(registry *rendering.Registry, r types.Record, logger *zap.Logger) *Session {
	if registry == nil {
		registry = rendering.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		ID:          id,
		registry:    registry,
		logger:      logger.With(zap.String("session", id.String())),
		record:      r,
		template:    registry.DefaultID(),
		updatedAt:   time.Now(),
		subscribers: make(map[chan Event]struct{}),
	}
}

// Record returns the current record.
func (s *Session) Record() types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Template returns the selected template id.
func (s *Session) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// Exporting reports whether an export is running.
func (s *Session) Exporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}

// Notifications returns the notification history, oldest first.
func (s *Session) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// View returns a snapshot of the whole session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:            s.ID,
		Record:        s.record,
		Template:      s.template,
		Exporting:     s.exporting,
		Notifications: append([]Notification{}, s.notifications...),
		Version:       s.version,
		UpdatedAt:     s.updatedAt,
	}
}

// Apply runs one edit through the reducer.
func (s *Session) Apply(e editing.Edit) types.Record {
	return s.update(func(r types.Record) types.Record {
		return editing.Apply(r, e)
	})
}

// ApplyByName is Apply addressed by section wire name. Unknown names are a no-op.
func (s *Session) ApplyByName(section string, index *int, field string, value types.Value) types.Record {
	return s.update(func(r types.Record) types.Record {
		return editing.ApplyByName(r, section, index, field, value)
	})
}

// AddItem appends an empty item to a list section.
func (s *Session) AddItem(section types.SectionID) types.Record {
	return s.update(func(r types.Record) types.Record {
		return editing.AddItem(r, section)
	})
}

// RemoveItem removes the item at index from a list section.
func (s *Session) RemoveItem(section types.SectionID, index int) types.Record {
	return s.update(func(r types.Record) types.Record {
		return editing.RemoveItem(r, section, index)
	})
}

// Replace swaps in a whole record, e.g. after an import.
func (s *Session) Replace(r types.Record) types.Record {
	return s.update(func(types.Record) types.Record {
		return r
	})
}

// SelectTemplate changes the template. An unknown id selects the default;
// the id actually selected is returned.
func (s *Session) SelectTemplate(id string) string {
	resolved := s.registry.ResolveID(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if resolved != s.template {
		s.template = resolved
		s.touchLocked(EventUpdated)
	}
	return resolved
}

// Preview renders the current record with the selected template.
func (s *Session) Preview() *html.Node {
	s.mu.Lock()
	r, tmpl := s.record, s.template
	s.mu.Unlock()
	return s.registry.Render(r, tmpl)
}

// Subscribe returns a channel of change events and a function that ends the
// subscription. The channel is closed by the cancel function or when the
// session is closed.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Close ends every subscription. Further changes are still accepted.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) update(fn func(types.Record) types.Record) types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.record)
	if !next.Equal(s.record) {
		s.record = next
		s.touchLocked(EventUpdated)
	}
	return s.record
}

func (s *Session) notifyLocked(level Level, title, message string) {
	s.notifications = append(s.notifications, Notification{
		Level:   level,
		Title:   title,
		Message: message,
		At:      time.Now(),
	})
	if n := len(s.notifications); n > maxNotifications {
		s.notifications = append([]Notification(nil), s.notifications[n-maxNotifications:]...)
	}
	s.touchLocked(EventNotification)
}

// touchLocked bumps the version and fans out an event. Caller holds s.mu.
func (s *Session) touchLocked(t EventType) {
	s.version++
	s.updatedAt = time.Now()
	ev := Event{Type: t, Version: s.version}
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
