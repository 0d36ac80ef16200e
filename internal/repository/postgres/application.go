package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/veriflow/kyc-server/internal/model"
)

var _ model.ApplicationStore = (*ApplicationRepository)(nil)

type ApplicationRepository struct {
	db *Connection
}

func NewApplicationRepository(db *Connection) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, applicant_name, email, status, documents, submitted_at, decided_at`

func scanApplication(row pgx.Row) (model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID, &app.UserID, &app.ApplicantName, &app.Email, &app.Status,
		&app.Documents, &app.SubmittedAt, &app.DecidedAt,
	)
	return app, err
}

func (r *ApplicationRepository) Create(ctx context.Context, app model.Application) (model.Application, error) {
	query := `INSERT INTO kyc_applications (id, user_id, applicant_name, email, status, documents, submitted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + applicationColumns

	saved, err := scanApplication(r.db.QueryRow(ctx, query,
		app.ID, app.UserID, app.ApplicantName, app.Email, app.Status, app.Documents, app.SubmittedAt,
	))
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to create application: %w", err)
	}

	return saved, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM kyc_applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, model.ErrNotFound
		}
		return model.Application{}, fmt.Errorf("failed to get application by id: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM kyc_applications
			  WHERE user_id = $1 ORDER BY submitted_at DESC LIMIT 1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, model.ErrNotFound
		}
		return model.Application{}, fmt.Errorf("failed to get latest application: %w", err)
	}

	return app, nil
}

// List returns applications newest first, optionally filtered by status and
// by a case-insensitive substring match on applicant name or email.
func (r *ApplicationRepository) List(ctx context.Context, filter model.ApplicationFilter) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM kyc_applications WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (applicant_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY submitted_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepository) SetDecision(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, decidedAt time.Time) (model.Application, error) {
	query := `UPDATE kyc_applications SET status = $2, decided_at = $3
			  WHERE id = $1
			  RETURNING ` + applicationColumns

	app, err := scanApplication(r.db.QueryRow(ctx, query, id, status, decidedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, model.ErrNotFound
		}
		return model.Application{}, fmt.Errorf("failed to set application decision: %w", err)
	}

	return app, nil
}

// Analytics aggregates pipeline counts and the average time from submission
// to decision, in minutes, across decided applications.
func (r *ApplicationRepository) Analytics(ctx context.Context) (model.Analytics, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'verified'),
			COUNT(*) FILTER (WHERE status IN ('pending', 'processing')),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COALESCE(AVG(EXTRACT(EPOCH FROM (decided_at - submitted_at)) / 60) FILTER (WHERE decided_at IS NOT NULL), 0)
		FROM kyc_applications
	`

	var stats model.Analytics
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Verified, &stats.Pending, &stats.Rejected, &stats.AverageProcessingMinutes,
	)
	if err != nil {
		return model.Analytics{}, fmt.Errorf("failed to load analytics: %w", err)
	}

	return stats, nil
}
