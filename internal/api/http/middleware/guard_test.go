package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apictx "github.com/veriflow/kyc-server/internal/api/http/context"
	"github.com/veriflow/kyc-server/internal/model"
)

func identityInjector(cm model.ContextManager, identity *model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			ctx := cm.SetIdentityToContext(c.Request.Context(), *identity)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func TestGuardPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cm := apictx.NewManager()

	tests := []struct {
		name         string
		identity     *model.Identity
		requiredRole model.Role
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "anonymous redirects to login with next",
			identity:     nil,
			wantStatus:   http.StatusFound,
			wantLocation: "/login?next=%2Fkyc-portal",
		},
		{
			name:         "customer blocked from admin page",
			identity:     &model.Identity{ID: "u1", Role: model.RoleCustomer},
			requiredRole: model.RoleAdmin,
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:       "authenticated customer renders",
			identity:   &model.Identity{ID: "u1", Role: model.RoleCustomer},
			wantStatus: http.StatusOK,
		},
		{
			name:         "admin renders admin page",
			identity:     &model.Identity{ID: "a1", Role: model.RoleAdmin},
			requiredRole: model.RoleAdmin,
			wantStatus:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/kyc-portal",
				identityInjector(cm, tt.identity),
				GuardPage(cm, tt.requiredRole),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/kyc-portal", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestGuardAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cm := apictx.NewManager()

	tests := []struct {
		name         string
		identity     *model.Identity
		requiredRole model.Role
		wantStatus   int
	}{
		{
			name:       "anonymous gets 401",
			identity:   nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "wrong role gets 403",
			identity:     &model.Identity{ID: "u1", Role: model.RoleCustomer},
			requiredRole: model.RoleAdmin,
			wantStatus:   http.StatusForbidden,
		},
		{
			name:       "authenticated passes through",
			identity:   &model.Identity{ID: "u1", Role: model.RoleCustomer},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/resource",
				identityInjector(cm, tt.identity),
				GuardAPI(cm, tt.requiredRole),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resource", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
