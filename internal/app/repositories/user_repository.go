package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
	"github.com/internlink/internlink/internal/pkg/logger"
)

// UserRepository handles user database operations
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db db.Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, name, user_type, status, profile_picture,
		banned_at, banned_by, ban_reason, last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.UserType,
		&user.Status,
		&user.ProfilePicture,
		&user.BannedAt,
		&user.BannedBy,
		&user.BanReason,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and sets its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, name, user_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.Name, user.UserType, user.Status,
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID. Absence of a row is a nil result, not an error.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Absence of a row is a nil result.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates a user's basic profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name string, profilePicture *string) error {
	query := `
		UPDATE users
		SET name = $1, profile_picture = COALESCE($2, profile_picture), updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, name, profilePicture, userID)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating last login time")
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// Ban marks the account banned and records who and why
func (r *UserRepository) Ban(ctx context.Context, userID, adminID int64, reason string, at time.Time) error {
	query := `
		UPDATE users
		SET status = $1, banned_at = $2, banned_by = $3, ban_reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, models.UserStatusBanned, at, adminID, reason, userID)
	if err != nil {
		return fmt.Errorf("error banning user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Unban restores the account and clears the ban fields
func (r *UserRepository) Unban(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET status = $1, banned_at = NULL, banned_by = NULL, ban_reason = NULL, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, models.UserStatusActive, userID)
	if err != nil {
		return fmt.Errorf("error unbanning user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user. Dependent rows go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CountByRole returns the number of users with a role
func (r *UserRepository) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE user_type = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users by role: %w", err)
	}
	return count, nil
}

// GetAdminByUserID retrieves the admin extension row for a user.
// Absence of a row is a nil result: the user is simply not an admin.
func (r *UserRepository) GetAdminByUserID(ctx context.Context, userID int64) (*models.AdminUser, error) {
	query := `
		SELECT id, user_id, admin_level, permissions, created_at
		FROM admin_users
		WHERE user_id = $1
	`

	var admin models.AdminUser
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&admin.ID,
		&admin.UserID,
		&admin.AdminLevel,
		&admin.Permissions,
		&admin.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving admin user: %w", err)
	}
	return &admin, nil
}
