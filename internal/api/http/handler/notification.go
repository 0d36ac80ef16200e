package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/model"
)

// Notifications serves the per-user notification endpoints.
type Notifications struct {
	queue model.NotificationQueue
	cm    model.ContextManager
}

// NewNotifications creates a new notifications handler.
func NewNotifications(queue model.NotificationQueue, cm model.ContextManager) *Notifications {
	return &Notifications{queue: queue, cm: cm}
}

// List handles GET /api/notifications in insertion order.
func (h *Notifications) List(c *gin.Context) {
	identity, _ := h.cm.GetIdentityFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"notifications": h.queue.List(identity.ID)})
}

// Dismiss handles DELETE /api/notifications/:id. Dismissing an unknown id
// succeeds.
func (h *Notifications) Dismiss(c *gin.Context) {
	identity, _ := h.cm.GetIdentityFromContext(c.Request.Context())
	h.queue.Remove(identity.ID, c.Param("id"))
	c.Status(http.StatusNoContent)
}
