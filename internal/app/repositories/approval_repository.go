package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// ApprovalRepository handles organization approval database operations
type ApprovalRepository struct {
	db db.Querier
}

// NewApprovalRepository creates a new ApprovalRepository
func NewApprovalRepository(db db.Querier) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

const approvalColumns = `id, user_id, company_name, industry, website, description,
		status, admin_notes, reviewed_by, reviewed_at, submitted_at`

func scanApproval(row interface{ Scan(dest ...any) error }) (*models.OrganizationApproval, error) {
	var approval models.OrganizationApproval
	err := row.Scan(
		&approval.ID,
		&approval.UserID,
		&approval.CompanyName,
		&approval.Industry,
		&approval.Website,
		&approval.Description,
		&approval.Status,
		&approval.AdminNotes,
		&approval.ReviewedBy,
		&approval.ReviewedAt,
		&approval.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

// Create inserts a pending approval request and sets its generated ID
func (r *ApprovalRepository) Create(ctx context.Context, approval *models.OrganizationApproval) error {
	query := `
		INSERT INTO organization_approvals (user_id, company_name, industry, website, description, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, submitted_at
	`

	err := r.db.QueryRow(ctx, query,
		approval.UserID, approval.CompanyName, approval.Industry,
		approval.Website, approval.Description, models.ApprovalPending,
	).Scan(&approval.ID, &approval.SubmittedAt)
	if err != nil {
		return fmt.Errorf("error creating organization approval: %w", err)
	}

	approval.Status = models.ApprovalPending
	return nil
}

// GetByID retrieves an approval request. Absence of a row is a nil result.
func (r *ApprovalRepository) GetByID(ctx context.Context, id int64) (*models.OrganizationApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM organization_approvals WHERE id = $1`

	approval, err := scanApproval(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving organization approval: %w", err)
	}
	return approval, nil
}

// GetPending retrieves pending requests oldest first, each with the
// submitting account joined in
func (r *ApprovalRepository) GetPending(ctx context.Context) ([]*models.OrganizationApproval, error) {
	query := `
		SELECT o.id, o.user_id, o.company_name, o.industry, o.website, o.description,
			o.status, o.admin_notes, o.reviewed_by, o.reviewed_at, o.submitted_at,
			u.id, u.email, u.password, u.name, u.user_type, u.status, u.profile_picture,
			u.banned_at, u.banned_by, u.ban_reason, u.last_login_at, u.created_at, u.updated_at
		FROM organization_approvals o
		JOIN users u ON u.id = o.user_id
		WHERE o.status = $1
		ORDER BY o.submitted_at ASC
	`

	rows, err := r.db.Query(ctx, query, models.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var approvals []*models.OrganizationApproval
	for rows.Next() {
		var approval models.OrganizationApproval
		var submitter models.User
		err := rows.Scan(
			&approval.ID, &approval.UserID, &approval.CompanyName, &approval.Industry,
			&approval.Website, &approval.Description, &approval.Status, &approval.AdminNotes,
			&approval.ReviewedBy, &approval.ReviewedAt, &approval.SubmittedAt,
			&submitter.ID, &submitter.Email, &submitter.Password, &submitter.Name,
			&submitter.UserType, &submitter.Status, &submitter.ProfilePicture,
			&submitter.BannedAt, &submitter.BannedBy, &submitter.BanReason,
			&submitter.LastLoginAt, &submitter.CreatedAt, &submitter.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		approval.Submitter = &submitter
		approvals = append(approvals, &approval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return approvals, nil
}

// Review transitions a request from pending to a terminal status. The
// WHERE clause pins the pending state so a request is decided exactly once:
// a second decision affects no rows and maps to ErrApprovalAlreadyReviewed.
func (r *ApprovalRepository) Review(ctx context.Context, id, adminID int64, status models.ApprovalStatus, notes *string, at time.Time) error {
	query := `
		UPDATE organization_approvals
		SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $5 AND status = $6
	`

	cmdTag, err := r.db.Exec(ctx, query, status, notes, adminID, at, id, models.ApprovalPending)
	if err != nil {
		return fmt.Errorf("error reviewing organization approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.ErrApprovalNotFound
		}
		return apperrors.ErrApprovalAlreadyReviewed
	}
	return nil
}

// CountPending returns the number of undecided requests
func (r *ApprovalRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM organization_approvals WHERE status = $1`,
		models.ApprovalPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending approvals: %w", err)
	}
	return count, nil
}
