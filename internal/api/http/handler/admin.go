package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/service"
)

// Admin serves the admin review endpoints.
type Admin struct {
	verifications *service.Verification
	logger        *logger.Logger
}

// NewAdmin creates a new admin handler.
func NewAdmin(verifications *service.Verification, logger *logger.Logger) *Admin {
	return &Admin{verifications: verifications, logger: logger}
}

type decisionRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ListApplications handles GET /api/admin/applications with optional status
// and search query filters.
func (h *Admin) ListApplications(c *gin.Context) {
	filter := model.ApplicationFilter{
		Status: model.ApplicationStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	apps, err := h.verifications.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if apps == nil {
		apps = []model.Application{}
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Decide handles POST /api/admin/applications/:id/decision.
func (h *Admin) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approve is required"})
		return
	}

	app, err := h.verifications.Decide(c.Request.Context(), id, *req.Approve)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// Analytics handles GET /api/admin/analytics.
func (h *Admin) Analytics(c *gin.Context) {
	stats, err := h.verifications.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
