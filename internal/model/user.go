package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user role. Roles are immutable after creation: there is no
// role-change operation anywhere in the system.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// VerificationStatus is the KYC verification state of a user.
type VerificationStatus string

const (
	VerificationNotStarted VerificationStatus = "not_started"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// Identity is the authenticated user record handed to sessions and clients.
// The JSON shape is the persisted user_data schema, so field tags are part of
// the storage contract.
type Identity struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	DisplayName        string             `json:"name"`
	Role               Role               `json:"role"`
	VerificationStatus VerificationStatus `json:"kycStatus"`
	AvatarURL          string             `json:"avatar,omitempty"`
}

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status VerificationStatus) (User, error)
}

// User represents a stored user with authentication material.
type User struct {
	ID                 uuid.UUID
	Email              string
	DisplayName        string
	PasswordHash       []byte
	Role               Role
	VerificationStatus VerificationStatus
	AvatarURL          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Identity projects the stored user onto the record exposed to sessions.
func (u User) Identity() Identity {
	return Identity{
		ID:                 u.ID.String(),
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		AvatarURL:          u.AvatarURL,
	}
}
