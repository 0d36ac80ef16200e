package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/api/http/middleware"
	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/service"
	"github.com/veriflow/kyc-server/internal/session"
)

// Auth serves the authentication endpoints.
type Auth struct {
	sessions *session.Store
	tokens   *service.Tokens
	cm       model.ContextManager
	logger   *logger.Logger
}

// NewAuth creates a new auth handler.
func NewAuth(sessions *session.Store, tokens *service.Tokens, cm model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{sessions: sessions, tokens: tokens, cm: cm, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func sessionResponse(c *gin.Context, status int, sess model.Session, store model.DurableStore) {
	token, _ := store.Get(model.StorageKeyAuthToken)
	c.JSON(status, gin.H{"user": sess.Current, "token": token})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	store := middleware.StoreFromContext(c)
	sess, err := h.sessions.Login(c.Request.Context(), store, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := store.Save(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	sessionResponse(c, http.StatusOK, sess, store)
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	store := middleware.StoreFromContext(c)
	sess, err := h.sessions.Register(c.Request.Context(), store, req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := store.Save(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	sessionResponse(c, http.StatusCreated, sess, store)
}

// Logout handles POST /api/auth/logout. Always succeeds.
func (h *Auth) Logout(c *gin.Context) {
	store := middleware.StoreFromContext(c)
	h.sessions.Logout(c.Request.Context(), store)

	if err := store.Save(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Refresh handles POST /api/auth/refresh: rotates the refresh token stored
// in the session and returns a new access token.
func (h *Auth) Refresh(c *gin.Context) {
	store := middleware.StoreFromContext(c)
	refresh, ok := store.Get(model.StorageKeyRefreshToken)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}

	pair, err := h.tokens.Refresh(c.Request.Context(), refresh)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	store.Set(model.StorageKeyAuthToken, pair.AccessToken)
	store.Set(model.StorageKeyRefreshToken, pair.RefreshToken)
	if err := store.Save(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": pair.AccessToken})
}

// Me handles GET /api/auth/me.
func (h *Auth) Me(c *gin.Context) {
	identity, ok := h.cm.GetIdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": identity})
}
