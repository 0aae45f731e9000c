package repositories

import (
	"context"
	"fmt"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db db.Querier
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db db.Querier) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, intern_id, job_id, status, cover_letter, resume_url, notes,
		applied_at, updated_at`

func scanApplication(row interface{ Scan(dest ...any) error }, extra ...any) (*models.Application, error) {
	var app models.Application
	dest := []any{
		&app.ID,
		&app.InternID,
		&app.JobID,
		&app.Status,
		&app.CoverLetter,
		&app.ResumeURL,
		&app.Notes,
		&app.AppliedAt,
		&app.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts an application and sets its generated ID and applied time.
// The unique (intern_id, job_id) constraint maps to ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (intern_id, job_id, status, cover_letter, resume_url, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, applied_at
	`

	err := r.db.QueryRow(ctx, query,
		app.InternID, app.JobID, app.Status, app.CoverLetter, app.ResumeURL,
	).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application. Absence of a row is a nil result.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// GetByInternID retrieves an intern's applications newest first, each with
// its job and the job's employer joined in (application -> job -> employer)
func (r *ApplicationRepository) GetByInternID(ctx context.Context, internID int64) ([]*models.Application, error) {
	query := `
		SELECT a.id, a.intern_id, a.job_id, a.status, a.cover_letter, a.resume_url, a.notes,
			a.applied_at, a.updated_at,
			j.id, j.employer_id, j.title, j.description, j.requirements, j.skills_required,
			j.location, j.job_type, j.duration, j.stipend, j.is_paid,
			j.application_deadline, j.start_date, j.end_date, j.status,
			j.moderation_status, j.moderation_notes, j.moderated_by, j.moderated_at,
			j.posted_at, j.created_at, j.updated_at,
			e.id, e.user_id, e.company_name, e.company_description, e.industry,
			e.location, e.website, e.company_size, e.logo_url, e.contact_name,
			e.contact_phone, e.founded_year, e.created_at, e.updated_at
		FROM applications a
		JOIN job_listings j ON j.id = a.job_id
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE a.intern_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, internID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var job models.JobListing
		var employer models.EmployerProfile
		app, err := scanApplication(rows,
			&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Requirements,
			&job.SkillsRequired, &job.Location, &job.JobType, &job.Duration, &job.Stipend,
			&job.IsPaid, &job.ApplicationDeadline, &job.StartDate, &job.EndDate, &job.Status,
			&job.ModerationStatus, &job.ModerationNotes, &job.ModeratedBy, &job.ModeratedAt,
			&job.PostedAt, &job.CreatedAt, &job.UpdatedAt,
			&employer.ID, &employer.UserID, &employer.CompanyName, &employer.CompanyDescription,
			&employer.Industry, &employer.Location, &employer.Website, &employer.CompanySize,
			&employer.LogoURL, &employer.ContactName, &employer.ContactPhone, &employer.FoundedYear,
			&employer.CreatedAt, &employer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		job.Employer = &employer
		app.Job = &job
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return apps, nil
}

// GetByJobID retrieves a listing's applications newest first, each with
// the applying intern's account joined in
func (r *ApplicationRepository) GetByJobID(ctx context.Context, jobID int64) ([]*models.Application, error) {
	query := `
		SELECT a.id, a.intern_id, a.job_id, a.status, a.cover_letter, a.resume_url, a.notes,
			a.applied_at, a.updated_at,
			u.id, u.email, u.password, u.name, u.user_type, u.status, u.profile_picture,
			u.banned_at, u.banned_by, u.ban_reason, u.last_login_at, u.created_at, u.updated_at
		FROM applications a
		JOIN users u ON u.id = a.intern_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var intern models.User
		app, err := scanApplication(rows,
			&intern.ID, &intern.Email, &intern.Password, &intern.Name, &intern.UserType,
			&intern.Status, &intern.ProfilePicture, &intern.BannedAt, &intern.BannedBy,
			&intern.BanReason, &intern.LastLoginAt, &intern.CreatedAt, &intern.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		app.Intern = &intern
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return apps, nil
}

// ExistsForInternAndJob checks whether the intern already applied to the job
func (r *ApplicationRepository) ExistsForInternAndJob(ctx context.Context, internID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE intern_id = $1 AND job_id = $2)`,
		internID, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus transitions an application and optionally replaces the notes
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, notes *string) error {
	query := `
		UPDATE applications
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Count returns the total number of applications
func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return count, nil
}

// CountPerDay aggregates applications per day over the last N days for the
// admin dashboard trends chart. Days with no applications are omitted.
func (r *ApplicationRepository) CountPerDay(ctx context.Context, days int) (map[string]int64, error) {
	query := `
		SELECT TO_CHAR(applied_at::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM applications
		WHERE applied_at >= NOW() - ($1 || ' days')::interval
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}
