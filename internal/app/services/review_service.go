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

// ReviewService handles reviews between interns and employers. Reviews
// are immutable, there is no update or delete path.
type ReviewService struct {
	reviewRepo   *repositories.ReviewRepository
	appRepo      *repositories.ApplicationRepository
	jobRepo      *repositories.JobListingRepository
	employerRepo *repositories.EmployerProfileRepository
	feed         *changefeed.Feed
	logger       zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(repos *repositories.Repositories, feed *changefeed.Feed, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:   repos.ReviewRepository,
		appRepo:      repos.ApplicationRepository,
		jobRepo:      repos.JobListingRepository,
		employerRepo: repos.EmployerProfileRepository,
		feed:         feed,
		logger:       logger,
	}
}

// Create writes a review tied to an accepted application. The reviewer
// must be a participant of that application and the direction must match
// their side of it. One review per application and direction.
func (s *ReviewService) Create(ctx context.Context, reviewerID int64, reviewerRole models.RoleType, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("rating must be between 1 and 5")
	}
	if req.ReviewType != models.ReviewInternToEmployer && req.ReviewType != models.ReviewEmployerToIntern {
		return nil, apperrors.NewBadRequestError("unknown review type")
	}

	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve application", err)
	}
	if app == nil {
		return nil, apperrors.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationAccepted {
		return nil, apperrors.NewBadRequestError("only accepted applications can be reviewed")
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}

	switch req.ReviewType {
	case models.ReviewInternToEmployer:
		if reviewerRole != models.RoleIntern || app.InternID != reviewerID {
			return nil, apperrors.NewForbiddenError("only the applicant can review the employer")
		}
		if job.Employer == nil || job.Employer.UserID != req.RevieweeID {
			return nil, apperrors.NewBadRequestError("reviewee is not the employer of this application")
		}
	case models.ReviewEmployerToIntern:
		if reviewerRole != models.RoleEmployer {
			return nil, apperrors.NewForbiddenError("only the employer can review the intern")
		}
		employer, err := s.employerRepo.GetByUserID(ctx, reviewerID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to retrieve employer profile", err)
		}
		if employer == nil || employer.ID != job.EmployerID {
			return nil, apperrors.NewForbiddenError("listing belongs to another employer")
		}
		if app.InternID != req.RevieweeID {
			return nil, apperrors.NewBadRequestError("reviewee is not the applicant of this application")
		}
	}

	review := &models.Review{
		ReviewerID:    reviewerID,
		RevieweeID:    req.RevieweeID,
		ApplicationID: req.ApplicationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		ReviewType:    req.ReviewType,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if err == apperrors.ErrResourceAlreadyExists {
			return nil, apperrors.NewConflictError("this application has already been reviewed")
		}
		return nil, apperrors.NewDatabaseError("failed to create review", err)
	}

	s.logger.Info().
		Int64("reviewID", review.ID).
		Int64("reviewerID", reviewerID).
		Int64("revieweeID", req.RevieweeID).
		Str("reviewType", string(req.ReviewType)).
		Msg("Review created")

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "reviews",
		RowID:  review.ID,
		Row:    review,
	})

	return review, nil
}

// GetForUser retrieves the reviews a user has received together with the
// running average rating
func (s *ReviewService) GetForUser(ctx context.Context, userID int64) ([]*models.Review, float64, error) {
	reviews, err := s.reviewRepo.GetForUser(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("failed to retrieve reviews", err)
	}

	avg, err := s.reviewRepo.AverageRating(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("failed to compute average rating", err)
	}

	return reviews, avg, nil
}

// GetByUser retrieves the reviews a user has written
func (s *ReviewService) GetByUser(ctx context.Context, userID int64) ([]*models.Review, error) {
	reviews, err := s.reviewRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve reviews", err)
	}
	return reviews, nil
}
