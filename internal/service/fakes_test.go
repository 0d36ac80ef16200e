package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/veriflow/kyc-server/internal/model"
)

type fakeUserStore struct {
	users     map[uuid.UUID]model.User
	createErr error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	if s.createErr != nil {
		return model.User{}, s.createErr
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) UpdateVerificationStatus(_ context.Context, id uuid.UUID, status model.VerificationStatus) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	u.VerificationStatus = status
	s.users[id] = u
	return u, nil
}

type fakeRefreshTokenStore struct {
	tokens map[string]model.RefreshToken
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{tokens: make(map[string]model.RefreshToken)}
}

func (s *fakeRefreshTokenStore) Create(_ context.Context, token model.RefreshToken) error {
	s.tokens[token.JTI] = token
	return nil
}

func (s *fakeRefreshTokenStore) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	t, ok := s.tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return t, nil
}

func (s *fakeRefreshTokenStore) RevokeByJTI(_ context.Context, jti string) error {
	t, ok := s.tokens[jti]
	if !ok {
		return model.ErrNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	s.tokens[jti] = t
	return nil
}

func (s *fakeRefreshTokenStore) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for jti, t := range s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			s.tokens[jti] = t
		}
	}
	return nil
}

type fakeApplicationStore struct {
	apps      map[uuid.UUID]model.Application
	order     []uuid.UUID
	createErr error
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[uuid.UUID]model.Application)}
}

func (s *fakeApplicationStore) Create(_ context.Context, app model.Application) (model.Application, error) {
	if s.createErr != nil {
		return model.Application{}, s.createErr
	}
	s.apps[app.ID] = app
	s.order = append(s.order, app.ID)
	return app, nil
}

func (s *fakeApplicationStore) GetByID(_ context.Context, id uuid.UUID) (model.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return model.Application{}, model.ErrNotFound
	}
	return app, nil
}

func (s *fakeApplicationStore) GetLatestByUserID(_ context.Context, userID uuid.UUID) (model.Application, error) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if app := s.apps[s.order[i]]; app.UserID == userID {
			return app, nil
		}
	}
	return model.Application{}, model.ErrNotFound
}

func (s *fakeApplicationStore) List(_ context.Context, filter model.ApplicationFilter) ([]model.Application, error) {
	var out []model.Application
	for i := len(s.order) - 1; i >= 0; i-- {
		app := s.apps[s.order[i]]
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (s *fakeApplicationStore) SetDecision(_ context.Context, id uuid.UUID, status model.ApplicationStatus, decidedAt time.Time) (model.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return model.Application{}, model.ErrNotFound
	}
	app.Status = status
	app.DecidedAt = &decidedAt
	s.apps[id] = app
	return app, nil
}

func (s *fakeApplicationStore) Analytics(_ context.Context) (model.Analytics, error) {
	var stats model.Analytics
	for _, app := range s.apps {
		stats.Total++
		switch app.Status {
		case model.ApplicationVerified:
			stats.Verified++
		case model.ApplicationRejected:
			stats.Rejected++
		default:
			stats.Pending++
		}
	}
	return stats, nil
}

type fakeQueue struct {
	byUser map[string][]model.Notification
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{byUser: make(map[string][]model.Notification)}
}

func (q *fakeQueue) Add(userID string, severity model.Severity, title, message string) {
	q.byUser[userID] = append(q.byUser[userID], model.Notification{
		Severity: severity,
		Title:    title,
		Message:  message,
	})
}

func (q *fakeQueue) Remove(userID, id string) {}

func (q *fakeQueue) List(userID string) []model.Notification {
	return q.byUser[userID]
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}
