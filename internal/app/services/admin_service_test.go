package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminServiceForTest(t *testing.T) (*AdminService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repos := repositories.NewRepositories(mock)
	feed := changefeed.New()
	t.Cleanup(feed.Close)

	return NewAdminService(repos, feed, zerolog.Nop()), mock
}

func expectAdminRow(mock pgxmock.PgxPoolIface, userID int64) {
	mock.ExpectQuery("FROM admin_users").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "admin_level", "permissions", "created_at",
		}).AddRow(int64(1), userID, "moderator", []string{"ban_users"}, time.Now()))
}

func expectUserRow(mock pgxmock.PgxPoolIface, userID int64, email string, userType models.RoleType) {
	mock.ExpectQuery("FROM users WHERE id = ").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password", "name", "user_type", "status", "profile_picture",
			"banned_at", "banned_by", "ban_reason", "last_login_at", "created_at", "updated_at",
		}).AddRow(
			userID, email, "hash", "Test User", userType, models.UserStatusActive, nil,
			nil, nil, nil, nil, time.Now(), time.Now(),
		))
}

func TestCheckAccessRejectsNonAdmin(t *testing.T) {
	svc, mock := newAdminServiceForTest(t)

	mock.ExpectQuery("FROM admin_users").
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.CheckAccess(context.Background(), 7)

	assert.ErrorIs(t, err, apperrors.ErrNotAnAdmin)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanUserSucceedsWhenAuditWriteFails(t *testing.T) {
	svc, mock := newAdminServiceForTest(t)

	adminID := int64(1)
	targetID := int64(42)

	expectAdminRow(mock, adminID)
	expectUserRow(mock, targetID, "intern@example.com", models.RoleIntern)

	mock.ExpectExec("UPDATE users").
		WithArgs(models.UserStatusBanned, pgxmock.AnyArg(), adminID, "spamming employers", targetID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	// The audit insert fails but the ban itself stands
	mock.ExpectQuery("INSERT INTO audit_logs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("audit table unavailable"))

	err := svc.BanUser(context.Background(), adminID, targetID, &dto.BanUserRequest{Reason: "spamming employers"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanUserRejectsSelfBan(t *testing.T) {
	svc, mock := newAdminServiceForTest(t)

	expectAdminRow(mock, 1)

	err := svc.BanUser(context.Background(), 1, 1, &dto.BanUserRequest{Reason: "oops"})

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTrendsFillsMissingDays(t *testing.T) {
	svc, mock := newAdminServiceForTest(t)

	expectAdminRow(mock, 1)

	today := time.Now().Format("2006-01-02")
	mock.ExpectQuery("FROM applications").
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"day", "count"}).
			AddRow(today, int64(3)))

	points, err := svc.GetTrends(context.Background(), 1, 7)

	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, today, points[6].Date)
	assert.Equal(t, int64(3), points[6].Count)
	for _, p := range points[:6] {
		assert.Zero(t, p.Count)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
