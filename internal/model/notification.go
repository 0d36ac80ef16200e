package model

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is an ephemeral, user-dismissible status message. The JSON
// tags mirror the shape clients render.
type Notification struct {
	ID       string   `json:"id"`
	Severity Severity `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// NotificationQueue is an ordered, per-user collection of notifications.
// Insertion order is display order. There is no deduplication, no priority
// ordering and no automatic expiry: entries live until dismissed.
type NotificationQueue interface {
	// Add appends a notification with a fresh generation-order-derived id.
	Add(userID string, severity Severity, title, message string)
	// Remove dismisses the notification with the given id. Removing an
	// unknown id is a no-op, not an error.
	Remove(userID, id string)
	// List returns the user's notifications in insertion order.
	List(userID string) []Notification
}
