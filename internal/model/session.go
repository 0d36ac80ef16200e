package model

// Durable storage keys for persisted session state. The keys are always
// written and removed together; no partial combination is ever observable.
const (
	StorageKeyAuthToken    = "auth_token"
	StorageKeyUserData     = "user_data"
	StorageKeyRefreshToken = "refresh_token"
)

// DurableStore is the client-scoped durable key-value storage session state
// survives reloads in. The HTTP layer backs it with a cookie session; tests
// back it with a map.
type DurableStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Session holds at most one current Identity for a single client.
// Current is owned exclusively by the session store; everything else reads it.
type Session struct {
	Current *Identity

	// IsResolving reports that session state is still being restored or an
	// auth exchange is in flight. Guard decisions must suspend rendering
	// while it is set instead of redirecting.
	IsResolving bool
}

// Authenticated reports whether the session carries a current identity.
func (s Session) Authenticated() bool {
	return s.Current != nil
}
