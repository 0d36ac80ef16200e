// Package cookie backs the durable session storage with an encrypted cookie,
// giving each client its own isolated key-value store that survives reloads.
package cookie

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/veriflow/kyc-server/internal/model"
)

// Provider opens per-request cookie stores.
type Provider struct {
	store *sessions.CookieStore
	name  string
}

// NewProvider creates a provider signing cookies with secret.
func NewProvider(secret, cookieName string) *Provider {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Provider{store: store, name: cookieName}
}

// Open loads the client's store from the request cookie. A missing or
// undecodable cookie yields an empty store.
func (p *Provider) Open(w http.ResponseWriter, r *http.Request) *Store {
	sess, _ := p.store.Get(r, p.name)
	return &Store{session: sess, w: w, r: r}
}

// Store is a single client's durable key-value storage. Mutations are
// buffered until Save writes the cookie.
type Store struct {
	session *sessions.Session
	w       http.ResponseWriter
	r       *http.Request
	dirty   bool
}

func (s *Store) Get(key string) (string, bool) {
	v, ok := s.session.Values[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *Store) Set(key, value string) {
	s.session.Values[key] = value
	s.dirty = true
}

func (s *Store) Delete(key string) {
	if _, ok := s.session.Values[key]; ok {
		delete(s.session.Values, key)
		s.dirty = true
	}
}

// Save writes the cookie if any mutation happened since Open.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := s.session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session cookie: %w", err)
	}
	s.dirty = false
	return nil
}

var _ model.DurableStore = (*Store)(nil)
