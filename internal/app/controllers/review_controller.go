package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// ReviewController handles review operations
type ReviewController struct {
	reviewService *services.ReviewService
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService, logger zerolog.Logger) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		logger:        logger,
	}
}

// reviewsPayload bundles a user's reviews with their average rating
type reviewsPayload struct {
	Reviews       []dto.ReviewResponse `json:"reviews"`
	AverageRating float64              `json:"averageRating"`
}

// Create posts a review
// @Summary Create a review
// @Description Reviews the other party of an accepted application; one review per direction per application
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review data"
// @Success 201 {object} dto.StructuredResponse{data=dto.ReviewResponse} "Review created"
// @Failure 400 {object} dto.ErrorResponse "Invalid rating, type, or the application is not accepted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a party of the application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed this application"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create review payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	review, err := c.reviewService.Create(ctx.Request.Context(), userID, currentRole(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("applicationID", req.ApplicationID).Int64("userID", userID).Msg("Failed to create review")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("reviewID", review.ID).Int64("userID", userID).Msg("Review created")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromReview(review), "Review created"))
}

// GetForUser lists the reviews received by a user
// @Summary List reviews about a user
// @Description Returns the reviews a user received along with their average rating
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Reviewee user ID"
// @Success 200 {object} dto.StructuredResponse "Reviews with average rating"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/user/{userId} [get]
func (c *ReviewController) GetForUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	reviews, average, err := c.reviewService.GetForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(reviewsPayload{
		Reviews:       dto.FromReviews(reviews),
		AverageRating: average,
	}, "Reviews retrieved"))
}

// GetByUser lists the reviews written by a user
// @Summary List reviews written by a user
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Reviewer user ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ReviewResponse} "Reviews"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/by/{userId} [get]
func (c *ReviewController) GetByUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	reviews, err := c.reviewService.GetByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromReviews(reviews), "Reviews retrieved"))
}
