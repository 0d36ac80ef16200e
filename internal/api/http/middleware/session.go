package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/api/http/cookie"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/session"
)

const storeKey = "durable_store"

// Resolve restores the session from the request cookie and places the
// identity, if any, into the request context. The opened durable store is
// stashed for handlers that mutate session state.
func Resolve(sessions *session.Store, provider *cookie.Provider, cm model.ContextManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := provider.Open(c.Writer, c.Request)
		c.Set(storeKey, store)

		sess := sessions.Restore(c.Request.Context(), store)
		if sess.Authenticated() {
			ctx := cm.SetIdentityToContext(c.Request.Context(), *sess.Current)
			c.Request = c.Request.WithContext(ctx)
		}

		// Restore may have cleared corrupt entries.
		_ = store.Save()

		c.Next()
	}
}

// StoreFromContext returns the durable store opened by Resolve.
func StoreFromContext(c *gin.Context) *cookie.Store {
	v, _ := c.Get(storeKey)
	store, _ := v.(*cookie.Store)
	return store
}
