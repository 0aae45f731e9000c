package services

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/live"
	"github.com/internlink/internlink/internal/pkg/apperrors"
)

func newApplicationServiceForTest(t *testing.T) (*ApplicationService, pgxmock.PgxPoolIface, *changefeed.Feed) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repos := repositories.NewRepositories(mock)
	feed := changefeed.New()
	t.Cleanup(feed.Close)

	return NewApplicationService(repos, feed, NewNotifier(feed), zerolog.Nop()), mock, feed
}

func expectApplicationRow(mock pgxmock.PgxPoolIface, appID, internID, jobID int64, status models.ApplicationStatus) {
	mock.ExpectQuery("FROM applications WHERE id = ").
		WithArgs(appID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "intern_id", "job_id", "status", "cover_letter", "resume_url", "notes",
			"applied_at", "updated_at",
		}).AddRow(appID, internID, jobID, status, nil, nil, nil, time.Now(), time.Now()))
}

func expectJobWithEmployerRow(mock pgxmock.PgxPoolIface, jobID, employerID, employerUserID int64) {
	now := time.Now()
	mock.ExpectQuery("FROM job_listings j").
		WithArgs(jobID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employer_id", "title", "description", "requirements", "skills_required",
			"location", "job_type", "duration", "stipend", "is_paid",
			"application_deadline", "start_date", "end_date", "status",
			"moderation_status", "moderation_notes", "moderated_by", "moderated_at",
			"posted_at", "created_at", "updated_at",
			"e_id", "user_id", "company_name", "company_description", "industry",
			"e_location", "website", "company_size", "logo_url", "contact_name",
			"contact_phone", "founded_year", "e_created_at", "e_updated_at",
		}).AddRow(
			jobID, employerID, "Backend Intern", "Build APIs", []string{"Go"}, []string{"go"},
			"Berlin", models.JobTypeHybrid, nil, nil, true,
			nil, nil, nil, models.JobStatusActive,
			models.ModerationApproved, nil, nil, nil,
			now, now, now,
			employerID, employerUserID, "Acme Robotics", nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, now, now,
		))
}

func TestWithdrawDeletesApplication(t *testing.T) {
	svc, mock, feed := newApplicationServiceForTest(t)
	sub := feed.Subscribe("applications", nil)
	defer sub.Unsubscribe()

	expectApplicationRow(mock, 7, 5, 42, models.ApplicationApplied)
	mock.ExpectExec("DELETE FROM applications").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app, err := svc.Withdraw(context.Background(), 5, 7)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationWithdrawn, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	select {
	case event := <-sub.Events():
		assert.Equal(t, changefeed.ActionDelete, event.Action)
		assert.Equal(t, int64(7), event.RowID)
	default:
		t.Fatal("expected a delete event on the applications feed")
	}
}

// A withdrawn application disappears from a live applications view: the
// delete event removes its entry instead of leaving a flagged row behind.
func TestWithdrawnApplicationLeavesLiveView(t *testing.T) {
	svc, mock, feed := newApplicationServiceForTest(t)
	sub := feed.Subscribe("applications", nil)
	defer sub.Unsubscribe()

	expectApplicationRow(mock, 7, 5, 42, models.ApplicationApplied)
	mock.ExpectExec("DELETE FROM applications").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	rec := live.NewReconciler(func(a *models.Application) int64 { return a.ID })
	rec.Seed([]*models.Application{{ID: 7, InternID: 5, JobID: 42, Status: models.ApplicationApplied}})
	require.Equal(t, 1, rec.Len())

	_, err := svc.Withdraw(context.Background(), 5, 7)
	require.NoError(t, err)

	event := <-sub.Events()
	rec.Apply(event.Action, event.RowID, nil)
	assert.Equal(t, 0, rec.Len())
}

func TestWithdrawRejectsForeignApplication(t *testing.T) {
	svc, mock, _ := newApplicationServiceForTest(t)

	expectApplicationRow(mock, 7, 6, 42, models.ApplicationApplied)

	_, err := svc.Withdraw(context.Background(), 5, 7)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "no delete may run for another intern's application")
}

func TestWithdrawUnknownApplication(t *testing.T) {
	svc, mock, _ := newApplicationServiceForTest(t)

	mock.ExpectQuery("FROM applications WHERE id = ").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "intern_id", "job_id", "status", "cover_letter", "resume_url", "notes",
			"applied_at", "updated_at",
		}))

	_, err := svc.Withdraw(context.Background(), 5, 99)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

// The status-update surface routes an intern's withdrawn transition into
// the same row deletion as the withdraw operation
func TestUpdateStatusWithdrawnRemovesRow(t *testing.T) {
	svc, mock, feed := newApplicationServiceForTest(t)
	sub := feed.Subscribe("applications", nil)
	defer sub.Unsubscribe()

	expectApplicationRow(mock, 7, 5, 42, models.ApplicationApplied)
	expectJobWithEmployerRow(mock, 42, 3, 9)
	mock.ExpectExec("DELETE FROM applications").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app, err := svc.UpdateStatus(context.Background(), 5, models.RoleIntern, 7, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationWithdrawn,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationWithdrawn, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	event := <-sub.Events()
	assert.Equal(t, changefeed.ActionDelete, event.Action)
}

// After a withdrawal the uniqueness check sees no row, so applying to the
// same listing again succeeds
func TestApplyAllowedAfterWithdrawal(t *testing.T) {
	svc, mock, _ := newApplicationServiceForTest(t)

	expectJobWithEmployerRow(mock, 42, 3, 9)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5), int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(5), int64(42), models.ApplicationApplied, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "applied_at"}).AddRow(int64(8), time.Now()))

	app, err := svc.Apply(context.Background(), 5, &dto.ApplyRequest{JobID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(8), app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
