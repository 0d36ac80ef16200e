package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
)

// Verification runs the KYC application pipeline: customers submit, admins
// review and decide.
type Verification struct {
	apps          model.ApplicationStore
	users         model.UserStore
	notifications model.NotificationQueue
	logger        *logger.Logger
}

// NewVerification creates a new verification service.
func NewVerification(apps model.ApplicationStore, users model.UserStore, notifications model.NotificationQueue, logger *logger.Logger) *Verification {
	return &Verification{
		apps:          apps,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// Submit opens a pending application for the user and moves their
// verification status to pending. The applicant gets an in-app notification.
func (v *Verification) Submit(ctx context.Context, userID uuid.UUID, documents int) (model.Application, error) {
	user, err := v.users.GetByID(ctx, userID)
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to get user: %w", err)
	}

	app, err := v.apps.Create(ctx, model.Application{
		ID:            uuid.New(),
		UserID:        user.ID,
		ApplicantName: user.DisplayName,
		Email:         user.Email,
		Status:        model.ApplicationPending,
		Documents:     documents,
		SubmittedAt:   time.Now(),
	})
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to create application: %w", err)
	}

	if _, err := v.users.UpdateVerificationStatus(ctx, user.ID, model.VerificationPending); err != nil {
		return model.Application{}, fmt.Errorf("failed to update verification status: %w", err)
	}

	v.notifications.Add(user.ID.String(), model.SeverityInfo,
		"Documents Submitted", "Your verification documents are under review.")

	v.logger.Info("application submitted", "application_id", app.ID, "user_id", user.ID)
	return app, nil
}

// Status returns the user's most recent application.
func (v *Verification) Status(ctx context.Context, userID uuid.UUID) (model.Application, error) {
	app, err := v.apps.GetLatestByUserID(ctx, userID)
	if err != nil {
		return model.Application{}, err
	}
	return app, nil
}

// List returns applications matching the filter, newest first.
func (v *Verification) List(ctx context.Context, filter model.ApplicationFilter) ([]model.Application, error) {
	apps, err := v.apps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Decide closes the application as verified or rejected, updates the
// applicant's verification status and notifies them.
func (v *Verification) Decide(ctx context.Context, applicationID uuid.UUID, approve bool) (model.Application, error) {
	status := model.ApplicationRejected
	userStatus := model.VerificationRejected
	if approve {
		status = model.ApplicationVerified
		userStatus = model.VerificationVerified
	}

	app, err := v.apps.SetDecision(ctx, applicationID, status, time.Now())
	if err != nil {
		return model.Application{}, err
	}

	if _, err := v.users.UpdateVerificationStatus(ctx, app.UserID, userStatus); err != nil {
		return model.Application{}, fmt.Errorf("failed to update verification status: %w", err)
	}

	if approve {
		v.notifications.Add(app.UserID.String(), model.SeveritySuccess,
			"Verification Approved", "Your identity has been verified successfully.")
	} else {
		v.notifications.Add(app.UserID.String(), model.SeverityError,
			"Verification Rejected", "Your verification was rejected. Please resubmit your documents.")
	}

	v.logger.Info("application decided", "application_id", app.ID, "status", status)
	return app, nil
}

// Analytics summarizes the application pipeline.
func (v *Verification) Analytics(ctx context.Context) (model.Analytics, error) {
	stats, err := v.apps.Analytics(ctx)
	if err != nil {
		return model.Analytics{}, fmt.Errorf("failed to load analytics: %w", err)
	}
	return stats, nil
}
