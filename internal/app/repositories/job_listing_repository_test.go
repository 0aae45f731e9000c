package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobListingRows(total int64, now time.Time) *pgxmock.Rows {
	cols := append(append([]string{}, jobListingColumns...), "count")
	return pgxmock.NewRows(cols).
		AddRow(
			int64(1), int64(10), "Backend Intern", "Build APIs", []string{"Go"}, []string{"go", "sql"},
			"Berlin", models.JobTypeHybrid, nil, nil, true,
			nil, nil, nil, models.JobStatusActive,
			models.ModerationApproved, nil, nil, nil,
			now, now, now, total,
		).
		AddRow(
			int64(2), int64(11), "Data Intern", "Crunch numbers", []string{}, []string{"python"},
			"Remote", models.JobTypeRemote, nil, nil, false,
			nil, nil, nil, models.JobStatusActive,
			models.ModerationPending, nil, nil, nil,
			now.Add(-time.Hour), now, now, total,
		)
}

func TestJobListingGetAllActiveFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	status := models.JobStatusActive

	mock.ExpectQuery("SELECT .+ FROM job_listings WHERE status = .+ ORDER BY posted_at DESC").
		WithArgs(status).
		WillReturnRows(jobListingRows(2, now))

	repo := NewJobListingRepository(mock)
	jobs, total, err := repo.GetAll(context.Background(), JobListingFilter{Status: &status}, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Backend Intern", jobs[0].Title)
	assert.Equal(t, models.JobStatusActive, jobs[0].Status)
	assert.True(t, jobs[0].PostedAt.After(jobs[1].PostedAt), "newest listing first")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingGetAllModerationFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	status := models.JobStatusActive
	approved := models.ModerationApproved

	mock.ExpectQuery("SELECT .+ FROM job_listings WHERE status = .+ AND moderation_status = .+ ORDER BY posted_at DESC").
		WithArgs(status, approved).
		WillReturnRows(jobListingRows(2, now))

	repo := NewJobListingRepository(mock)
	jobs, _, err := repo.GetAll(context.Background(), JobListingFilter{
		Status:           &status,
		ModerationStatus: &approved,
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingGetByIDAbsentRowIsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM job_listings j").
		WithArgs(int64(99)).
		WillReturnError(errNoRowsForTest())

	repo := NewJobListingRepository(mock)
	job, err := repo.GetByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingModerateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	notes := "spam"
	at := time.Now()
	mock.ExpectExec("UPDATE job_listings").
		WithArgs(models.ModerationRejected, &notes, int64(3), at, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewJobListingRepository(mock)
	err = repo.Moderate(context.Background(), 99, 3, models.ModerationRejected, &notes, at)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
