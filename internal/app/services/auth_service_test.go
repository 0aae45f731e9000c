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
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/auth"
	"github.com/internlink/internlink/internal/pkg/email"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repos := repositories.NewRepositories(mock)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "internlink.test",
	})
	// Without SMTP credentials outgoing mail is logged, not sent
	emailService := email.NewService(email.SMTPConfig{}, zerolog.Nop())

	return NewAuthService(repos, jwtService, emailService, zerolog.Nop()), mock
}

func expectUserByEmail(mock pgxmock.PgxPoolIface, emailAddr, passwordHash string, status models.UserStatus) {
	mock.ExpectQuery("FROM users WHERE email = ").
		WithArgs(emailAddr).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password", "name", "user_type", "status", "profile_picture",
			"banned_at", "banned_by", "ban_reason", "last_login_at", "created_at", "updated_at",
		}).AddRow(
			int64(5), emailAddr, passwordHash, "Test User", models.RoleIntern, status, nil,
			nil, nil, nil, nil, time.Now(), time.Now(),
		))
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "Passw0rd!",
		Name:     "Test",
		UserType: models.RoleIntern,
	})
	assert.Error(t, err)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "intern@example.com",
		Password: "short",
		Name:     "Test",
		UserType: models.RoleIntern,
	})
	assert.Error(t, err)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "admin@example.com",
		Password: "Passw0rd!",
		Name:     "Test",
		UserType: models.RoleAdmin,
	})
	assert.Error(t, err)
}

func TestRegisterRequiresCompanyNameForEmployers(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "employer@example.com",
		Password: "Passw0rd!",
		Name:     "Test",
		UserType: models.RoleEmployer,
	})
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock := newAuthServiceForTest(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("taken@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "Passw0rd!",
		Name:     "Test",
		UserType: models.RoleIntern,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, mock := newAuthServiceForTest(t)

	mock.ExpectQuery("FROM users WHERE email = ").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password", "name", "user_type", "status", "profile_picture",
			"banned_at", "banned_by", "ban_reason", "last_login_at", "created_at", "updated_at",
		}))

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "Passw0rd!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, mock := newAuthServiceForTest(t)

	hash, err := auth.HashPassword("Correct1!")
	require.NoError(t, err)
	expectUserByEmail(mock, "intern@example.com", hash, models.UserStatusActive)

	_, _, err = svc.Login(context.Background(), "intern@example.com", "Wrong1!pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsBannedAccount(t *testing.T) {
	svc, mock := newAuthServiceForTest(t)

	hash, err := auth.HashPassword("Correct1!")
	require.NoError(t, err)
	expectUserByEmail(mock, "banned@example.com", hash, models.UserStatusBanned)

	_, _, err = svc.Login(context.Background(), "banned@example.com", "Correct1!")
	assert.ErrorIs(t, err, apperrors.ErrAccountBanned)
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, mock := newAuthServiceForTest(t)

	hash, err := auth.HashPassword("Correct1!")
	require.NoError(t, err)
	expectUserByEmail(mock, "intern@example.com", hash, models.UserStatusActive)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(pgxmock.AnyArg(), int64(5), pgxmock.AnyArg(), false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE users SET last_login_at").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, tokens, err := svc.Login(context.Background(), "intern@example.com", "Correct1!")
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), tokens.ExpiresIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}
