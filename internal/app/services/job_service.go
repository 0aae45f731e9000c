package services

import (
	"context"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// JobService handles job listing operations. Every mutation publishes a
// row event so live views track the table without polling.
type JobService struct {
	jobRepo      *repositories.JobListingRepository
	employerRepo *repositories.EmployerProfileRepository
	feed         *changefeed.Feed
	logger       zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(repos *repositories.Repositories, feed *changefeed.Feed, logger zerolog.Logger) *JobService {
	return &JobService{
		jobRepo:      repos.JobListingRepository,
		employerRepo: repos.EmployerProfileRepository,
		feed:         feed,
		logger:       logger,
	}
}

// Browse retrieves listings matching the filter, newest first. The public
// browse surface pins status to active; owners and admins can widen it.
func (s *JobService) Browse(ctx context.Context, filter repositories.JobListingFilter, page, pageSize int) ([]*models.JobListing, int64, error) {
	jobs, total, err := s.jobRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("failed to browse job listings", err)
	}
	return jobs, total, nil
}

// GetByID retrieves one listing with its employer. Absence is a nil result.
func (s *JobService) GetByID(ctx context.Context, id int64) (*models.JobListing, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	return job, nil
}

// GetMine retrieves the listings owned by an employer account
func (s *JobService) GetMine(ctx context.Context, userID int64) ([]*models.JobListing, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
	}
	if employer == nil {
		return nil, apperrors.NewForbiddenError("no employer profile for this account")
	}

	jobs, err := s.jobRepo.GetByEmployerID(ctx, employer.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer listings", err)
	}
	return jobs, nil
}

// Create posts a listing owned by the caller's employer profile
func (s *JobService) Create(ctx context.Context, userID int64, req *dto.CreateJobRequest) (*models.JobListing, error) {
	employer, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
	}
	if employer == nil {
		return nil, apperrors.NewForbiddenError("only employer accounts can post listings")
	}

	status := models.JobStatusActive
	if req.Status != nil {
		status = *req.Status
	}

	job := &models.JobListing{
		EmployerID:          employer.ID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		SkillsRequired:      req.SkillsRequired,
		Location:            req.Location,
		JobType:             req.JobType,
		Duration:            req.Duration,
		Stipend:             req.Stipend,
		IsPaid:              req.IsPaid,
		ApplicationDeadline: req.ApplicationDeadline,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Status:              status,
		ModerationStatus:    models.ModerationApproved,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create job listing", err)
	}
	job.Employer = employer

	s.logger.Info().Int64("jobID", job.ID).Int64("employerID", employer.ID).Msg("Job listing created")
	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "job_listings",
		RowID:  job.ID,
		Row:    job,
	})

	return job, nil
}

// getOwned loads a listing and verifies the caller's employer profile owns it
func (s *JobService) getOwned(ctx context.Context, userID, jobID int64) (*models.JobListing, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}

	employer, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
	}
	if employer == nil || employer.ID != job.EmployerID {
		return nil, apperrors.NewForbiddenError("listing belongs to another employer")
	}

	return job, nil
}

// Update edits an owned listing
func (s *JobService) Update(ctx context.Context, userID, jobID int64, req *dto.UpdateJobRequest) (*models.JobListing, error) {
	job, err := s.getOwned(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.SkillsRequired != nil {
		job.SkillsRequired = req.SkillsRequired
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Duration != nil {
		job.Duration = req.Duration
	}
	if req.Stipend != nil {
		job.Stipend = req.Stipend
	}
	if req.IsPaid != nil {
		job.IsPaid = *req.IsPaid
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.StartDate != nil {
		job.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		job.EndDate = req.EndDate
	}
	if req.Status != nil {
		job.Status = *req.Status
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update job listing", err)
	}

	s.logger.Info().Int64("jobID", job.ID).Msg("Job listing updated")
	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionUpdate,
		Table:  "job_listings",
		RowID:  job.ID,
		Row:    job,
	})

	return job, nil
}

// Delete removes an owned listing
func (s *JobService) Delete(ctx context.Context, userID, jobID int64) error {
	if _, err := s.getOwned(ctx, userID, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return apperrors.NewDatabaseError("failed to delete job listing", err)
	}

	s.logger.Info().Int64("jobID", jobID).Msg("Job listing deleted")
	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionDelete,
		Table:  "job_listings",
		RowID:  jobID,
	})

	return nil
}
