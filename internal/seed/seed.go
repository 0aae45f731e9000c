// Package seed creates the default records a fresh database needs:
// the bootstrap admin account and its admin_users row.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/internlink/internlink/internal/app/models"
	appRepos "github.com/internlink/internlink/internal/app/repositories"
)

const (
	defaultAdminEmail    = "admin@internlink.app"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData ensures the default admin account exists. Errors are
// collected and returned so the caller can decide whether to treat them
// as fatal; an already-seeded database is not an error.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}

	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: string(hashedPassword),
		Name:     "System Administrator",
		UserType: appModels.RoleAdmin,
		Status:   appModels.UserStatusActive,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	// The admin_users row grants the moderation console. Superadmin level
	// with the wildcard permission so the bootstrap account can do
	// everything until real admins are provisioned.
	_, err = dbPool.Exec(ctx, `
		INSERT INTO admin_users (user_id, admin_level, permissions)
		VALUES ($1, 'superadmin', ARRAY['*'])
		ON CONFLICT (user_id) DO NOTHING
	`, admin.ID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin_users row")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return finalErr
}
