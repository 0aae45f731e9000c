package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalReviewTransitionsFromPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now()
	mock.ExpectExec("UPDATE organization_approvals").
		WithArgs(models.ApprovalApproved, (*string)(nil), int64(3), at, int64(12), models.ApprovalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewApprovalRepository(mock)
	err = repo.Review(context.Background(), 12, 3, models.ApprovalApproved, nil, at)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalReviewSecondDecisionRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now()
	reviewedAt := at.Add(-time.Hour)
	adminID := int64(3)

	// The guarded update misses because the row is no longer pending
	mock.ExpectExec("UPDATE organization_approvals").
		WithArgs(models.ApprovalRejected, (*string)(nil), adminID, at, int64(12), models.ApprovalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	mock.ExpectQuery("FROM organization_approvals WHERE id = ").
		WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "company_name", "industry", "website", "description",
			"status", "admin_notes", "reviewed_by", "reviewed_at", "submitted_at",
		}).AddRow(
			int64(12), int64(8), "Acme Robotics", nil, nil, nil,
			models.ApprovalApproved, nil, &adminID, &reviewedAt, at.Add(-2*time.Hour),
		))

	repo := NewApprovalRepository(mock)
	err = repo.Review(context.Background(), 12, 3, models.ApprovalRejected, nil, at)

	assert.ErrorIs(t, err, apperrors.ErrApprovalAlreadyReviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalReviewUnknownID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now()
	mock.ExpectExec("UPDATE organization_approvals").
		WithArgs(models.ApprovalApproved, (*string)(nil), int64(3), at, int64(99), models.ApprovalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	mock.ExpectQuery("FROM organization_approvals WHERE id = ").
		WithArgs(int64(99)).
		WillReturnError(errNoRowsForTest())

	repo := NewApprovalRepository(mock)
	err = repo.Review(context.Background(), 99, 3, models.ApprovalApproved, nil, at)

	assert.ErrorIs(t, err, apperrors.ErrApprovalNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
