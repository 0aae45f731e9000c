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

func TestApplicationCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	cover := "I would love to join"
	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(5), int64(42), models.ApplicationApplied, &cover, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "applied_at"}).AddRow(int64(7), now))

	repo := NewApplicationRepository(mock)
	app := &models.Application{
		InternID:    5,
		JobID:       42,
		Status:      models.ApplicationApplied,
		CoverLetter: &cover,
	}
	err = repo.Create(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, int64(7), app.ID)
	assert.Equal(t, now, app.AppliedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(5), int64(42), models.ApplicationApplied, (*string)(nil), (*string)(nil)).
		WillReturnError(uniqueViolationForTest())

	repo := NewApplicationRepository(mock)
	err = repo.Create(context.Background(), &models.Application{
		InternID: 5,
		JobID:    42,
		Status:   models.ApplicationApplied,
	})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationWithdrawn, (*string)(nil), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewApplicationRepository(mock)
	err = repo.UpdateStatus(context.Background(), 7, models.ApplicationWithdrawn, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatusNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationAccepted, (*string)(nil), int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewApplicationRepository(mock)
	err = repo.UpdateStatus(context.Background(), 99, models.ApplicationAccepted, nil)

	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
