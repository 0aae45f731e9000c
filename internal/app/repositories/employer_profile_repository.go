package repositories

import (
	"context"
	"fmt"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// EmployerProfileRepository handles employer profile database operations
type EmployerProfileRepository struct {
	db db.Querier
}

// NewEmployerProfileRepository creates a new EmployerProfileRepository
func NewEmployerProfileRepository(db db.Querier) *EmployerProfileRepository {
	return &EmployerProfileRepository{db: db}
}

const employerProfileColumns = `id, user_id, company_name, company_description, industry,
		location, website, company_size, logo_url, contact_name, contact_phone,
		founded_year, created_at, updated_at`

func scanEmployerProfile(row interface{ Scan(dest ...any) error }) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.CompanyDescription,
		&profile.Industry,
		&profile.Location,
		&profile.Website,
		&profile.CompanySize,
		&profile.LogoURL,
		&profile.ContactName,
		&profile.ContactPhone,
		&profile.FoundedYear,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts an employer profile and sets its generated ID
func (r *EmployerProfileRepository) Create(ctx context.Context, profile *models.EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles (user_id, company_name, company_description, industry,
			location, website, company_size, logo_url, contact_name, contact_phone,
			founded_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.CompanyName, profile.CompanyDescription, profile.Industry,
		profile.Location, profile.Website, profile.CompanySize, profile.LogoURL,
		profile.ContactName, profile.ContactPhone, profile.FoundedYear,
	).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating employer profile: %w", err)
	}

	return nil
}

// GetByID retrieves an employer profile by its own ID. Absence is nil.
func (r *EmployerProfileRepository) GetByID(ctx context.Context, id int64) (*models.EmployerProfile, error) {
	query := `SELECT ` + employerProfileColumns + ` FROM employer_profiles WHERE id = $1`

	profile, err := scanEmployerProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving employer profile: %w", err)
	}
	return profile, nil
}

// GetByUserID retrieves the profile belonging to a user. Absence is nil.
func (r *EmployerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.EmployerProfile, error) {
	query := `SELECT ` + employerProfileColumns + ` FROM employer_profiles WHERE user_id = $1`

	profile, err := scanEmployerProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving employer profile: %w", err)
	}
	return profile, nil
}

// Update writes the whole profile row
func (r *EmployerProfileRepository) Update(ctx context.Context, profile *models.EmployerProfile) error {
	query := `
		UPDATE employer_profiles
		SET company_name = $1, company_description = $2, industry = $3, location = $4,
			website = $5, company_size = $6, logo_url = $7, contact_name = $8,
			contact_phone = $9, founded_year = $10, updated_at = NOW()
		WHERE user_id = $11
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.CompanyName, profile.CompanyDescription, profile.Industry, profile.Location,
		profile.Website, profile.CompanySize, profile.LogoURL, profile.ContactName,
		profile.ContactPhone, profile.FoundedYear, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating employer profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateLogoURL sets just the company logo link after an upload
func (r *EmployerProfileRepository) UpdateLogoURL(ctx context.Context, userID int64, logoURL string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE employer_profiles SET logo_url = $1, updated_at = NOW() WHERE user_id = $2`,
		logoURL, userID)
	if err != nil {
		return fmt.Errorf("error updating logo url: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
