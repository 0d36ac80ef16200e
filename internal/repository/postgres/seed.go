package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/veriflow/kyc-server/internal/model"
)

type demoAccount struct {
	email    string
	password string
	name     string
	role     model.Role
	status   model.VerificationStatus
	avatar   string
}

var demoAccounts = []demoAccount{
	{
		email:    "admin@kyc.com",
		password: "admin123",
		name:     "Admin User",
		role:     model.RoleAdmin,
		status:   model.VerificationVerified,
		avatar:   "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?w=150&h=150&fit=crop",
	},
	{
		email:    "user@example.com",
		password: "user123",
		name:     "John Doe",
		role:     model.RoleCustomer,
		status:   model.VerificationPending,
		avatar:   "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?w=150&h=150&fit=crop",
	},
}

// SeedDemoAccounts ensures the demo login accounts exist. Accounts are
// looked up by email first, so repeated startups do not duplicate them.
func SeedDemoAccounts(ctx context.Context, users model.UserStore) error {
	for _, acc := range demoAccounts {
		_, err := users.GetByEmail(ctx, acc.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to look up demo account %s: %w", acc.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		_, err = users.Create(ctx, model.User{
			ID:                 uuid.New(),
			Email:              acc.email,
			DisplayName:        acc.name,
			PasswordHash:       hash,
			Role:               acc.role,
			VerificationStatus: acc.status,
			AvatarURL:          acc.avatar,
		})
		if err != nil {
			return fmt.Errorf("failed to create demo account %s: %w", acc.email, err)
		}
	}

	return nil
}
