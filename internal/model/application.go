package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a KYC application.
type ApplicationStatus string

const (
	ApplicationPending    ApplicationStatus = "pending"
	ApplicationProcessing ApplicationStatus = "processing"
	ApplicationVerified   ApplicationStatus = "verified"
	ApplicationRejected   ApplicationStatus = "rejected"
)

// Application is a KYC verification application opened when a customer
// submits their documents and closed by an admin decision.
type Application struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	ApplicantName string            `json:"userName"`
	Email         string            `json:"email"`
	Status        ApplicationStatus `json:"status"`
	Documents     int               `json:"documents"`
	SubmittedAt   time.Time         `json:"submissionDate"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty"`
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	// Status filters by exact status when non-empty.
	Status ApplicationStatus
	// Search matches applicant name or email, case-insensitively.
	Search string
}

// Analytics summarizes the application pipeline for the admin dashboard.
type Analytics struct {
	Total                    int     `json:"totalApplications"`
	Verified                 int     `json:"verifiedApplications"`
	Pending                  int     `json:"pendingApplications"`
	Rejected                 int     `json:"rejectedApplications"`
	AverageProcessingMinutes float64 `json:"averageProcessingTime"`
}

// ApplicationStore defines persistence operations for KYC applications.
type ApplicationStore interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	SetDecision(ctx context.Context, id uuid.UUID, status ApplicationStatus, decidedAt time.Time) (Application, error)
	Analytics(ctx context.Context) (Analytics, error)
}
