// Package notification keeps per-user, insertion-ordered queues of ephemeral
// status messages. Queues live in process memory only and are torn down with
// the server; there is no expiry, entries live until dismissed.
package notification

import (
	"fmt"
	"sync"

	"github.com/veriflow/kyc-server/internal/model"
)

// Queue implements model.NotificationQueue. Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	nextID uint64
	byUser map[string][]model.Notification
}

// NewQueue creates an empty notification queue.
func NewQueue() *Queue {
	return &Queue{byUser: make(map[string][]model.Notification)}
}

// Add appends a notification for the user. Ids derive from generation order
// and are unique across all users for the lifetime of the process.
func (q *Queue) Add(userID string, severity model.Severity, title, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.byUser[userID] = append(q.byUser[userID], model.Notification{
		ID:       fmt.Sprintf("ntf_%d", q.nextID),
		Severity: severity,
		Title:    title,
		Message:  message,
	})
}

// Remove dismisses the notification with the given id. Unknown ids are
// ignored, so Remove is idempotent.
func (q *Queue) Remove(userID, id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := q.byUser[userID]
	for i, n := range list {
		if n.ID == id {
			q.byUser[userID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// List returns a copy of the user's notifications in insertion order.
func (q *Queue) List(userID string) []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := q.byUser[userID]
	out := make([]model.Notification, len(list))
	copy(out, list)
	return out
}

var _ model.NotificationQueue = (*Queue)(nil)
