// Package builder owns the editing state of one CV: the record, the chosen
// template, the export status and the user-facing notifications.
package builder

import "time"

// Level is the severity of a notification
type Level string

// Notification levels
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Export notification texts
const (
	msgExportSucceeded = "Your CV has been downloaded."
	msgExportFailed    = "Failed to generate PDF. Please try again."
	msgRegionMissing   = "Could not find CV preview element."
)

// maxNotifications bounds the per-session history
const maxNotifications = 20

// Notification is a transient message for the user, like a toast.
type Notification struct {
	Level   Level     `json:"level"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// EventType says what changed in a session
type EventType string

// Event types
const (
	EventUpdated      EventType = "updated"
	EventExport       EventType = "export"
	EventNotification EventType = "notification"
)

// Event is delivered to subscribers after every change.
type Event struct {
	Type    EventType `json:"type"`
	Version uint64    `json:"version"`
}
