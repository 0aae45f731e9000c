package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".webp": true,
}

// ProfileService handles account and role profile operations
type ProfileService struct {
	userRepo     *repositories.UserRepository
	internRepo   *repositories.InternProfileRepository
	employerRepo *repositories.EmployerProfileRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repos *repositories.Repositories, storage filestorage.FileStorage, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		userRepo:     repos.UserRepository,
		internRepo:   repos.InternProfileRepository,
		employerRepo: repos.EmployerProfileRepository,
		storage:      storage,
		logger:       logger,
	}
}

// GetInternProfile retrieves the caller's intern profile with account info
func (s *ProfileService) GetInternProfile(ctx context.Context, userID int64) (*models.InternProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.internRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve intern profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewResourceNotFoundError("no intern profile for this account")
	}
	profile.User = user

	return profile, nil
}

// UpdateInternProfile applies a partial update. Nil fields stay untouched.
func (s *ProfileService) UpdateInternProfile(ctx context.Context, userID int64, req *dto.UpdateInternProfileRequest) (*models.InternProfile, error) {
	profile, err := s.GetInternProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Education != nil {
		profile.Education = req.Education
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
	}
	if req.LinkedinURL != nil {
		profile.LinkedinURL = req.LinkedinURL
	}
	if req.GithubURL != nil {
		profile.GithubURL = req.GithubURL
	}
	if req.PortfolioURL != nil {
		profile.PortfolioURL = req.PortfolioURL
	}
	if req.GPA != nil {
		profile.GPA = req.GPA
	}
	if req.GraduationDate != nil {
		profile.GraduationDate = req.GraduationDate
	}
	if req.AvailabilityStart != nil {
		profile.AvailabilityStart = req.AvailabilityStart
	}
	if req.AvailabilityEnd != nil {
		profile.AvailabilityEnd = req.AvailabilityEnd
	}

	if err := s.internRepo.Update(ctx, profile); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update intern profile", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("Intern profile updated")
	return profile, nil
}

// GetEmployerProfile retrieves the caller's employer profile with account info
func (s *ProfileService) GetEmployerProfile(ctx context.Context, userID int64) (*models.EmployerProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewResourceNotFoundError("no employer profile for this account")
	}
	profile.User = user

	return profile, nil
}

// UpdateEmployerProfile applies a partial update. Nil fields stay untouched.
func (s *ProfileService) UpdateEmployerProfile(ctx context.Context, userID int64, req *dto.UpdateEmployerProfileRequest) (*models.EmployerProfile, error) {
	profile, err := s.GetEmployerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.CompanyDescription != nil {
		profile.CompanyDescription = req.CompanyDescription
	}
	if req.Industry != nil {
		profile.Industry = req.Industry
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.Website != nil {
		profile.Website = req.Website
	}
	if req.CompanySize != nil {
		profile.CompanySize = req.CompanySize
	}
	if req.ContactName != nil {
		profile.ContactName = req.ContactName
	}
	if req.ContactPhone != nil {
		profile.ContactPhone = req.ContactPhone
	}
	if req.FoundedYear != nil {
		profile.FoundedYear = req.FoundedYear
	}

	if err := s.employerRepo.Update(ctx, profile); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update employer profile", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("Employer profile updated")
	return profile, nil
}

// UpdateAccount changes the display name and optionally the profile picture
func (s *ProfileService) UpdateAccount(ctx context.Context, userID int64, name string, picture *multipart.FileHeader) (*models.User, error) {
	var picturePath *string
	if picture != nil {
		if !logoExtensions[strings.ToLower(filepath.Ext(picture.Filename))] {
			return nil, apperrors.NewBadRequestError("profile picture must be an image file")
		}
		saved, err := s.storage.SaveFileWithPath(picture, "avatars")
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to store profile picture", err)
		}
		picturePath = &saved
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, picturePath); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update account", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UploadResume stores an intern's resume file and records its URL
func (s *ProfileService) UploadResume(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.NewBadRequestError("no file uploaded")
	}
	if !resumeExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return "", apperrors.NewBadRequestError("resume must be a pdf, doc or docx file")
	}

	path, err := s.storage.SaveFileWithPath(file, "resumes")
	if err != nil {
		return "", apperrors.NewDatabaseError("failed to store resume", err)
	}

	if err := s.internRepo.UpdateResumeURL(ctx, userID, path); err != nil {
		return "", apperrors.NewDatabaseError("failed to record resume url", err)
	}

	s.logger.Info().Int64("userID", userID).Str("path", path).Msg("Resume uploaded")
	return path, nil
}

// UploadLogo stores an employer's company logo and records its URL
func (s *ProfileService) UploadLogo(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.NewBadRequestError("no file uploaded")
	}
	if !logoExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return "", apperrors.NewBadRequestError("logo must be an image file")
	}

	path, err := s.storage.SaveFileWithPath(file, "logos")
	if err != nil {
		return "", apperrors.NewDatabaseError("failed to store logo", err)
	}

	if err := s.employerRepo.UpdateLogoURL(ctx, userID, path); err != nil {
		return "", apperrors.NewDatabaseError("failed to record logo url", err)
	}

	s.logger.Info().Int64("userID", userID).Str("path", path).Msg("Company logo uploaded")
	return path, nil
}
