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

// ApplicationService handles application operations
type ApplicationService struct {
	appRepo      *repositories.ApplicationRepository
	jobRepo      *repositories.JobListingRepository
	employerRepo *repositories.EmployerProfileRepository
	feed         *changefeed.Feed
	notifier     *Notifier
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(repos *repositories.Repositories, feed *changefeed.Feed, notifier *Notifier, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		appRepo:      repos.ApplicationRepository,
		jobRepo:      repos.JobListingRepository,
		employerRepo: repos.EmployerProfileRepository,
		feed:         feed,
		notifier:     notifier,
		logger:       logger,
	}
}

// Apply files an application to an active listing. One application per
// intern and listing.
func (s *ApplicationService) Apply(ctx context.Context, internUserID int64, req *dto.ApplyRequest) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.NewBadRequestError("listing is not accepting applications")
	}

	exists, err := s.appRepo.ExistsForInternAndJob(ctx, internUserID, req.JobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to check existing application", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		InternID:    internUserID,
		JobID:       req.JobID,
		Status:      models.ApplicationApplied,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create application", err)
	}
	app.Job = job

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("internID", internUserID).
		Int64("jobID", req.JobID).
		Msg("Application filed")

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "applications",
		RowID:  app.ID,
		Row:    app,
	})
	if job.Employer != nil {
		s.notifier.NewApplication(job.Employer.UserID, job.Title, app)
	}

	return app, nil
}

// GetMine retrieves the caller's applications with their job and employer
// context, newest first
func (s *ApplicationService) GetMine(ctx context.Context, internUserID int64) ([]*models.Application, error) {
	apps, err := s.appRepo.GetByInternID(ctx, internUserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve applications", err)
	}
	return apps, nil
}

// GetForJob retrieves a listing's applications for its owning employer
func (s *ApplicationService) GetForJob(ctx context.Context, employerUserID, jobID int64) ([]*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}

	employer, err := s.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
	}
	if employer == nil || employer.ID != job.EmployerID {
		return nil, apperrors.NewForbiddenError("listing belongs to another employer")
	}

	apps, err := s.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve applications", err)
	}
	return apps, nil
}

// UpdateStatus transitions an application. Employers move applications
// through the review pipeline on their own listings; interns may only
// withdraw their own application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actorUserID int64, actorRole models.RoleType, appID int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if !models.ValidApplicationStatus(req.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve application", err)
	}
	if app == nil {
		return nil, apperrors.ErrApplicationNotFound
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}

	switch actorRole {
	case models.RoleIntern:
		if app.InternID != actorUserID {
			return nil, apperrors.NewForbiddenError("application belongs to another intern")
		}
		if req.Status != models.ApplicationWithdrawn {
			return nil, apperrors.NewForbiddenError("interns can only withdraw applications")
		}
		// Withdrawal removes the row so the intern can apply again later
		return s.removeWithdrawn(ctx, app)
	case models.RoleEmployer:
		employer, err := s.employerRepo.GetByUserID(ctx, actorUserID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
		}
		if employer == nil || employer.ID != job.EmployerID {
			return nil, apperrors.NewForbiddenError("listing belongs to another employer")
		}
		if req.Status == models.ApplicationWithdrawn {
			return nil, apperrors.NewForbiddenError("only the applicant can withdraw")
		}
	default:
		return nil, apperrors.NewForbiddenError("role cannot change application status")
	}

	if err := s.appRepo.UpdateStatus(ctx, appID, req.Status, req.Notes); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update application status", err)
	}
	app.Status = req.Status
	if req.Notes != nil {
		app.Notes = req.Notes
	}

	s.logger.Info().
		Int64("applicationID", appID).
		Str("status", string(req.Status)).
		Msg("Application status updated")

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionUpdate,
		Table:  "applications",
		RowID:  appID,
		Row:    app,
	})
	if actorRole == models.RoleEmployer {
		s.notifier.StatusChange(app.InternID, job.Title, req.Status)
	}

	return app, nil
}

// Withdraw removes the caller's own application. The row is deleted, not
// flagged: the application disappears from every subsequent read and the
// intern is free to apply to the same listing again.
func (s *ApplicationService) Withdraw(ctx context.Context, internUserID, appID int64) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve application", err)
	}
	if app == nil {
		return nil, apperrors.ErrApplicationNotFound
	}
	if app.InternID != internUserID {
		return nil, apperrors.NewForbiddenError("application belongs to another intern")
	}

	return s.removeWithdrawn(ctx, app)
}

func (s *ApplicationService) removeWithdrawn(ctx context.Context, app *models.Application) (*models.Application, error) {
	if err := s.appRepo.Delete(ctx, app.ID); err != nil {
		return nil, apperrors.NewDatabaseError("failed to withdraw application", err)
	}
	app.Status = models.ApplicationWithdrawn

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("internID", app.InternID).
		Msg("Application withdrawn")

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionDelete,
		Table:  "applications",
		RowID:  app.ID,
		Row:    app,
	})

	return app, nil
}
