package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/guard"
	"github.com/veriflow/kyc-server/internal/model"
)

func sessionFromRequest(c *gin.Context, cm model.ContextManager) model.Session {
	identity, ok := cm.GetIdentityFromContext(c.Request.Context())
	if !ok {
		return model.Session{}
	}
	return model.Session{Current: &identity}
}

// GuardPage protects a page route. Anonymous clients are redirected to the
// login page with the requested path preserved in the next query parameter;
// authenticated clients without the required role go back home.
func GuardPage(cm model.ContextManager, requiredRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Decide(sessionFromRequest(c, cm), requiredRole, c.Request.URL.Path)

		switch decision.Action {
		case guard.RedirectLogin:
			target := decision.Location + "?next=" + url.QueryEscape(decision.ReturnTo)
			c.Redirect(http.StatusFound, target)
			c.Abort()
		case guard.RedirectHome:
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// GuardAPI protects an API route: 401 for anonymous clients, 403 for the
// wrong role.
func GuardAPI(cm model.ContextManager, requiredRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Decide(sessionFromRequest(c, cm), requiredRole, c.Request.URL.Path)

		switch decision.Action {
		case guard.RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case guard.RedirectHome:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		default:
			c.Next()
		}
	}
}
