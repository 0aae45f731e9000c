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

// ReportRepository handles user report database operations
type ReportRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db db.Querier) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reportColumns = []string{
	"id", "reporter_id", "reported_user_id", "reported_job_id", "reason", "details",
	"status", "admin_notes", "handled_by", "handled_at", "created_at",
}

func scanReport(row interface{ Scan(dest ...any) error }) (*models.UserReport, error) {
	var report models.UserReport
	err := row.Scan(
		&report.ID,
		&report.ReporterID,
		&report.ReportedUserID,
		&report.ReportedJobID,
		&report.Reason,
		&report.Details,
		&report.Status,
		&report.AdminNotes,
		&report.HandledBy,
		&report.HandledAt,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Create inserts a pending report and sets its generated ID
func (r *ReportRepository) Create(ctx context.Context, report *models.UserReport) error {
	query := `
		INSERT INTO user_reports (reporter_id, reported_user_id, reported_job_id, reason, details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		report.ReporterID, report.ReportedUserID, report.ReportedJobID,
		report.Reason, report.Details, models.ReportPending,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating report: %w", err)
	}

	report.Status = models.ReportPending
	return nil
}

// GetByID retrieves a report. Absence of a row is a nil result.
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.UserReport, error) {
	sql, args, err := r.sb.Select(reportColumns...).
		From("user_reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	report, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}
	return report, nil
}

// GetAll retrieves reports newest first, optionally narrowed to one status
func (r *ReportRepository) GetAll(ctx context.Context, status *models.ReportStatus) ([]*models.UserReport, error) {
	query := r.sb.Select(reportColumns...).
		From("user_reports").
		OrderBy("created_at DESC")

	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reports []*models.UserReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

// Handle records an admin resolution of a report
func (r *ReportRepository) Handle(ctx context.Context, id, adminID int64, status models.ReportStatus, notes *string, at time.Time) error {
	query := `
		UPDATE user_reports
		SET status = $1, admin_notes = $2, handled_by = $3, handled_at = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, status, notes, adminID, at, id)
	if err != nil {
		return fmt.Errorf("error handling report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// CountPending returns the number of unhandled reports
func (r *ReportRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_reports WHERE status = $1`,
		models.ReportPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending reports: %w", err)
	}
	return count, nil
}
