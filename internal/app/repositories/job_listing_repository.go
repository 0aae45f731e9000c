package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// JobListingFilter narrows the listing browse query
type JobListingFilter struct {
	Search           *string
	Location         *string
	JobType          *models.JobType
	Skill            *string
	IsPaid           *bool
	EmployerID       *int64
	Status           *models.JobStatus
	ModerationStatus *models.ModerationStatus
}

// JobListingRepository handles job listing database operations
type JobListingRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewJobListingRepository creates a new JobListingRepository
func NewJobListingRepository(db db.Querier) *JobListingRepository {
	return &JobListingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var jobListingColumns = []string{
	"id", "employer_id", "title", "description", "requirements", "skills_required",
	"location", "job_type", "duration", "stipend", "is_paid",
	"application_deadline", "start_date", "end_date", "status",
	"moderation_status", "moderation_notes", "moderated_by", "moderated_at",
	"posted_at", "created_at", "updated_at",
}

func scanJobListing(row interface{ Scan(dest ...any) error }, extra ...any) (*models.JobListing, error) {
	var job models.JobListing
	dest := []any{
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Requirements,
		&job.SkillsRequired,
		&job.Location,
		&job.JobType,
		&job.Duration,
		&job.Stipend,
		&job.IsPaid,
		&job.ApplicationDeadline,
		&job.StartDate,
		&job.EndDate,
		&job.Status,
		&job.ModerationStatus,
		&job.ModerationNotes,
		&job.ModeratedBy,
		&job.ModeratedAt,
		&job.PostedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts a listing and sets its generated ID and posted time
func (r *JobListingRepository) Create(ctx context.Context, job *models.JobListing) error {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}

	query := `
		INSERT INTO job_listings (employer_id, title, description, requirements, skills_required,
			location, job_type, duration, stipend, is_paid, application_deadline,
			start_date, end_date, status, moderation_status, posted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW(), NOW())
		RETURNING id, posted_at
	`

	err := r.db.QueryRow(ctx, query,
		job.EmployerID, job.Title, job.Description, job.Requirements, job.SkillsRequired,
		job.Location, job.JobType, job.Duration, job.Stipend, job.IsPaid,
		job.ApplicationDeadline, job.StartDate, job.EndDate, job.Status, job.ModerationStatus,
	).Scan(&job.ID, &job.PostedAt)
	if err != nil {
		return fmt.Errorf("error creating job listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing with its employer profile joined in.
// Absence of a row is a nil result.
func (r *JobListingRepository) GetByID(ctx context.Context, id int64) (*models.JobListing, error) {
	query := `
		SELECT j.id, j.employer_id, j.title, j.description, j.requirements, j.skills_required,
			j.location, j.job_type, j.duration, j.stipend, j.is_paid,
			j.application_deadline, j.start_date, j.end_date, j.status,
			j.moderation_status, j.moderation_notes, j.moderated_by, j.moderated_at,
			j.posted_at, j.created_at, j.updated_at,
			e.id, e.user_id, e.company_name, e.company_description, e.industry,
			e.location, e.website, e.company_size, e.logo_url, e.contact_name,
			e.contact_phone, e.founded_year, e.created_at, e.updated_at
		FROM job_listings j
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE j.id = $1
	`

	var employer models.EmployerProfile
	job, err := scanJobListing(r.db.QueryRow(ctx, query, id),
		&employer.ID, &employer.UserID, &employer.CompanyName, &employer.CompanyDescription,
		&employer.Industry, &employer.Location, &employer.Website, &employer.CompanySize,
		&employer.LogoURL, &employer.ContactName, &employer.ContactPhone, &employer.FoundedYear,
		&employer.CreatedAt, &employer.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving job listing: %w", err)
	}

	job.Employer = &employer
	return job, nil
}

// GetAll retrieves listings matching the filter, newest first, with the
// total row count for pagination
func (r *JobListingRepository) GetAll(ctx context.Context, filter JobListingFilter, page, pageSize int) ([]*models.JobListing, int64, error) {
	query := r.sb.Select(jobListingColumns...).
		Column("COUNT(*) OVER()").
		From("job_listings")

	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ModerationStatus != nil {
		query = query.Where(squirrel.Eq{"moderation_status": *filter.ModerationStatus})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Location != nil && *filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": "%" + *filter.Location + "%"})
	}
	if filter.JobType != nil {
		query = query.Where(squirrel.Eq{"job_type": *filter.JobType})
	}
	if filter.Skill != nil && *filter.Skill != "" {
		query = query.Where("? = ANY(skills_required)", *filter.Skill)
	}
	if filter.IsPaid != nil {
		query = query.Where(squirrel.Eq{"is_paid": *filter.IsPaid})
	}
	if filter.EmployerID != nil {
		query = query.Where(squirrel.Eq{"employer_id": *filter.EmployerID})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("posted_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var jobs []*models.JobListing
	var total int64
	for rows.Next() {
		job, err := scanJobListing(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return jobs, total, nil
}

// GetByEmployerID retrieves all listings of one employer, newest first
func (r *JobListingRepository) GetByEmployerID(ctx context.Context, employerID int64) ([]*models.JobListing, error) {
	sql, args, err := r.sb.Select(jobListingColumns...).
		From("job_listings").
		Where(squirrel.Eq{"employer_id": employerID}).
		OrderBy("posted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var jobs []*models.JobListing
	for rows.Next() {
		job, err := scanJobListing(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return jobs, nil
}

// Update writes the mutable listing fields
func (r *JobListingRepository) Update(ctx context.Context, job *models.JobListing) error {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}

	query := `
		UPDATE job_listings
		SET title = $1, description = $2, requirements = $3, skills_required = $4,
			location = $5, job_type = $6, duration = $7, stipend = $8, is_paid = $9,
			application_deadline = $10, start_date = $11, end_date = $12, status = $13,
			updated_at = NOW()
		WHERE id = $14
	`

	cmdTag, err := r.db.Exec(ctx, query,
		job.Title, job.Description, job.Requirements, job.SkillsRequired,
		job.Location, job.JobType, job.Duration, job.Stipend, job.IsPaid,
		job.ApplicationDeadline, job.StartDate, job.EndDate, job.Status, job.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating job listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Moderate records an admin moderation decision on a listing
func (r *JobListingRepository) Moderate(ctx context.Context, jobID, adminID int64, status models.ModerationStatus, notes *string, at time.Time) error {
	query := `
		UPDATE job_listings
		SET moderation_status = $1, moderation_notes = $2, moderated_by = $3,
			moderated_at = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, status, notes, adminID, at, jobID)
	if err != nil {
		return fmt.Errorf("error moderating job listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a listing
func (r *JobListingRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting job listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Count returns the total number of listings
func (r *JobListingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting job listings: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of listings in a lifecycle state
func (r *JobListingRepository) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting job listings by status: %w", err)
	}
	return count, nil
}
