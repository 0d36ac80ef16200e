package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/model"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>VeriFlow KYC · {{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .User}}<p>Signed in as {{.User.DisplayName}} ({{.User.Role}})</p>{{end}}
</body>
</html>
`))

// Pages renders the minimal server-side shells for the application pages.
// The interesting behavior lives in the guard middleware in front of them.
type Pages struct {
	cm model.ContextManager
}

// NewPages creates a new pages handler.
func NewPages(cm model.ContextManager) *Pages {
	return &Pages{cm: cm}
}

func (h *Pages) render(c *gin.Context, title string) {
	var user *model.Identity
	if identity, ok := h.cm.GetIdentityFromContext(c.Request.Context()); ok {
		user = &identity
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(c.Writer, gin.H{"Title": title, "User": user})
}

func (h *Pages) Home(c *gin.Context)      { h.render(c, "Home") }
func (h *Pages) Login(c *gin.Context)     { h.render(c, "Login") }
func (h *Pages) Register(c *gin.Context)  { h.render(c, "Register") }
func (h *Pages) KYCPortal(c *gin.Context) { h.render(c, "KYC Portal") }
func (h *Pages) Admin(c *gin.Context)     { h.render(c, "Admin Dashboard") }
