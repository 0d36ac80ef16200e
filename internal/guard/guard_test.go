package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veriflow/kyc-server/internal/model"
)

func sessionWith(role model.Role) model.Session {
	return model.Session{Current: &model.Identity{ID: "u1", Role: role}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		session      model.Session
		requiredRole model.Role
		want         Decision
	}{
		{
			name:    "resolving session suspends rendering",
			session: model.Session{IsResolving: true},
			want:    Decision{Action: ShowLoading},
		},
		{
			name:         "resolving wins even with required role",
			session:      model.Session{IsResolving: true},
			requiredRole: model.RoleAdmin,
			want:         Decision{Action: ShowLoading},
		},
		{
			name:    "anonymous redirects to login preserving destination",
			session: model.Session{},
			want:    Decision{Action: RedirectLogin, Location: "/login", ReturnTo: "/kyc-portal"},
		},
		{
			name:         "customer blocked from admin area",
			session:      sessionWith(model.RoleCustomer),
			requiredRole: model.RoleAdmin,
			want:         Decision{Action: RedirectHome, Location: "/"},
		},
		{
			name:         "admin allowed into admin area",
			session:      sessionWith(model.RoleAdmin),
			requiredRole: model.RoleAdmin,
			want:         Decision{Action: Render},
		},
		{
			name:    "any authenticated role renders when no role required",
			session: sessionWith(model.RoleCustomer),
			want:    Decision{Action: Render},
		},
		{
			name:         "admin blocked from customer-only area",
			session:      sessionWith(model.RoleAdmin),
			requiredRole: model.RoleCustomer,
			want:         Decision{Action: RedirectHome, Location: "/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.session, tt.requiredRole, "/kyc-portal")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecide_IsDeterministic(t *testing.T) {
	sess := sessionWith(model.RoleCustomer)
	first := Decide(sess, model.RoleAdmin, "/admin")
	second := Decide(sess, model.RoleAdmin, "/admin")
	assert.Equal(t, first, second)
}
