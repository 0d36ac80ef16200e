package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veriflow/kyc-server/internal/api/http/middleware"
	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/service"
)

// KYC serves the customer-facing verification endpoints.
type KYC struct {
	verifications *service.Verification
	cm            model.ContextManager
	logger        *logger.Logger
}

// NewKYC creates a new KYC handler.
func NewKYC(verifications *service.Verification, cm model.ContextManager, logger *logger.Logger) *KYC {
	return &KYC{verifications: verifications, cm: cm, logger: logger}
}

type submitRequest struct {
	Documents int `json:"documents" binding:"required,min=1"`
}

// Status handles GET /api/kyc/status: the verification status plus the
// latest application, if one exists.
func (h *KYC) Status(c *gin.Context) {
	identity, _ := h.cm.GetIdentityFromContext(c.Request.Context())
	userID, err := uuid.Parse(identity.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	app, err := h.verifications.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"kycStatus": identity.VerificationStatus, "application": nil})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"kycStatus": identity.VerificationStatus, "application": app})
}

// Submit handles POST /api/kyc/submit: opens a pending application and
// updates the persisted session identity to reflect the new status.
func (h *KYC) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documents count is required"})
		return
	}

	identity, _ := h.cm.GetIdentityFromContext(c.Request.Context())
	userID, err := uuid.Parse(identity.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	app, err := h.verifications.Submit(c.Request.Context(), userID, req.Documents)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	identity.VerificationStatus = model.VerificationPending
	if raw, err := json.Marshal(identity); err == nil {
		store := middleware.StoreFromContext(c)
		store.Set(model.StorageKeyUserData, string(raw))
		if err := store.Save(); err != nil {
			h.logger.Warn("failed to update session identity", "error", err.Error())
		}
	}

	c.JSON(http.StatusCreated, app)
}
