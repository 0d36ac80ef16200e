// Package router wires the HTTP middleware chain and route surface.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/api/http/cookie"
	"github.com/veriflow/kyc-server/internal/api/http/handler"
	"github.com/veriflow/kyc-server/internal/api/http/middleware"
	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/service"
	"github.com/veriflow/kyc-server/internal/session"
)

// Router assembles handlers and middleware into a gin engine.
type Router struct {
	sessions       *session.Store
	tokens         *service.Tokens
	verifications  *service.Verification
	notifications  model.NotificationQueue
	cookieProvider *cookie.Provider
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	sessions *session.Store,
	tokens *service.Tokens,
	verifications *service.Verification,
	notifications model.NotificationQueue,
	cookieProvider *cookie.Provider,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessions:       sessions,
		tokens:         tokens,
		verifications:  verifications,
		notifications:  notifications,
		cookieProvider: cookieProvider,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handler builds the engine with every route registered.
func (r *Router) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logging(r.logger))
	engine.Use(middleware.Resolve(r.sessions, r.cookieProvider, r.contextManager))

	authHandler := handler.NewAuth(r.sessions, r.tokens, r.contextManager, r.logger)
	kycHandler := handler.NewKYC(r.verifications, r.contextManager, r.logger)
	adminHandler := handler.NewAdmin(r.verifications, r.logger)
	notificationHandler := handler.NewNotifications(r.notifications, r.contextManager)
	pages := handler.NewPages(r.contextManager)

	api := engine.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.GuardAPI(r.contextManager, ""), authHandler.Me)

		kyc := api.Group("/kyc", middleware.GuardAPI(r.contextManager, ""))
		kyc.GET("/status", kycHandler.Status)
		kyc.POST("/submit", kycHandler.Submit)

		notifications := api.Group("/notifications", middleware.GuardAPI(r.contextManager, ""))
		notifications.GET("", notificationHandler.List)
		notifications.DELETE("/:id", notificationHandler.Dismiss)

		admin := api.Group("/admin", middleware.GuardAPI(r.contextManager, model.RoleAdmin))
		admin.GET("/applications", adminHandler.ListApplications)
		admin.POST("/applications/:id/decision", adminHandler.Decide)
		admin.GET("/analytics", adminHandler.Analytics)
	}

	engine.GET("/", pages.Home)
	engine.GET("/login", pages.Login)
	engine.GET("/register", pages.Register)
	engine.GET("/kyc-portal", middleware.GuardPage(r.contextManager, ""), pages.KYCPortal)
	engine.GET("/admin", middleware.GuardPage(r.contextManager, model.RoleAdmin), pages.Admin)

	// Unknown paths land on the home page.
	engine.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	return engine
}
