package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// InternProfileRepository handles intern profile database operations
type InternProfileRepository struct {
	db db.Querier
}

// NewInternProfileRepository creates a new InternProfileRepository
func NewInternProfileRepository(db db.Querier) *InternProfileRepository {
	return &InternProfileRepository{db: db}
}

const internProfileColumns = `id, user_id, resume_url, skills, education, experience, bio,
		location, phone, linkedin_url, github_url, portfolio_url, gpa,
		graduation_date, availability_start, availability_end, created_at, updated_at`

func scanInternProfile(row interface{ Scan(dest ...any) error }) (*models.InternProfile, error) {
	var profile models.InternProfile
	var educationJSON, experienceJSON []byte

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ResumeURL,
		&profile.Skills,
		&educationJSON,
		&experienceJSON,
		&profile.Bio,
		&profile.Location,
		&profile.Phone,
		&profile.LinkedinURL,
		&profile.GithubURL,
		&profile.PortfolioURL,
		&profile.GPA,
		&profile.GraduationDate,
		&profile.AvailabilityStart,
		&profile.AvailabilityEnd,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &profile.Education); err != nil {
			return nil, fmt.Errorf("error decoding education history: %w", err)
		}
	}
	if len(experienceJSON) > 0 {
		if err := json.Unmarshal(experienceJSON, &profile.Experience); err != nil {
			return nil, fmt.Errorf("error decoding experience history: %w", err)
		}
	}

	return &profile, nil
}

func marshalProfileHistory(profile *models.InternProfile) (education, experience []byte, err error) {
	if profile.Education == nil {
		profile.Education = []models.Education{}
	}
	if profile.Experience == nil {
		profile.Experience = []models.Experience{}
	}

	education, err = json.Marshal(profile.Education)
	if err != nil {
		return nil, nil, fmt.Errorf("error encoding education history: %w", err)
	}
	experience, err = json.Marshal(profile.Experience)
	if err != nil {
		return nil, nil, fmt.Errorf("error encoding experience history: %w", err)
	}
	return education, experience, nil
}

// Create inserts an intern profile and sets its generated ID
func (r *InternProfileRepository) Create(ctx context.Context, profile *models.InternProfile) error {
	education, experience, err := marshalProfileHistory(profile)
	if err != nil {
		return err
	}

	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	query := `
		INSERT INTO intern_profiles (user_id, resume_url, skills, education, experience, bio,
			location, phone, linkedin_url, github_url, portfolio_url, gpa,
			graduation_date, availability_start, availability_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		profile.UserID, profile.ResumeURL, profile.Skills, education, experience,
		profile.Bio, profile.Location, profile.Phone, profile.LinkedinURL,
		profile.GithubURL, profile.PortfolioURL, profile.GPA,
		profile.GraduationDate, profile.AvailabilityStart, profile.AvailabilityEnd,
	).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating intern profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile belonging to a user. Absence is nil.
func (r *InternProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.InternProfile, error) {
	query := `SELECT ` + internProfileColumns + ` FROM intern_profiles WHERE user_id = $1`

	profile, err := scanInternProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving intern profile: %w", err)
	}
	return profile, nil
}

// Update writes the whole profile row
func (r *InternProfileRepository) Update(ctx context.Context, profile *models.InternProfile) error {
	education, experience, err := marshalProfileHistory(profile)
	if err != nil {
		return err
	}

	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	query := `
		UPDATE intern_profiles
		SET resume_url = $1, skills = $2, education = $3, experience = $4, bio = $5,
			location = $6, phone = $7, linkedin_url = $8, github_url = $9,
			portfolio_url = $10, gpa = $11, graduation_date = $12,
			availability_start = $13, availability_end = $14, updated_at = NOW()
		WHERE user_id = $15
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.ResumeURL, profile.Skills, education, experience, profile.Bio,
		profile.Location, profile.Phone, profile.LinkedinURL, profile.GithubURL,
		profile.PortfolioURL, profile.GPA, profile.GraduationDate,
		profile.AvailabilityStart, profile.AvailabilityEnd, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating intern profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateResumeURL sets just the resume link after an upload
func (r *InternProfileRepository) UpdateResumeURL(ctx context.Context, userID int64, resumeURL string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE intern_profiles SET resume_url = $1, updated_at = NOW() WHERE user_id = $2`,
		resumeURL, userID)
	if err != nil {
		return fmt.Errorf("error updating resume url: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
