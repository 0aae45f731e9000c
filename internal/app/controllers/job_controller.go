package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// JobController handles job listing operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// toListingFilter builds the public browse filter. Status and moderation
// state are pinned server-side: only active, approved listings are ever
// served here, whatever the query string says. Drafts and closed listings
// stay on the owner surface (GetMine) and the admin console.
func toListingFilter(req *dto.JobFilterRequest) repositories.JobListingFilter {
	var filter repositories.JobListingFilter
	active := models.JobStatusActive
	approved := models.ModerationApproved
	filter.Status = &active
	filter.ModerationStatus = &approved

	if req.Search != "" {
		filter.Search = &req.Search
	}
	if req.Location != "" {
		filter.Location = &req.Location
	}
	if req.JobType != "" {
		jobType := models.JobType(req.JobType)
		filter.JobType = &jobType
	}
	if req.Skill != "" {
		filter.Skill = &req.Skill
	}
	filter.IsPaid = req.IsPaid
	if req.EmployerID > 0 {
		filter.EmployerID = &req.EmployerID
	}
	return filter
}

// Browse lists job listings
// @Summary Browse job listings
// @Description Returns active, approved listings newest first, with optional filters and pagination
// @Tags jobs
// @Produce json
// @Param search query string false "Full-text match on title and description"
// @Param location query string false "Location filter"
// @Param jobType query string false "Job type filter" Enums(remote, in-person, hybrid)
// @Param skill query string false "Required skill filter"
// @Param isPaid query bool false "Paid listings only"
// @Param employerId query int false "Listings of one employer"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Job listings"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (c *JobController) Browse(ctx *gin.Context) {
	var req dto.JobFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, pageSize := parsePagination(ctx)

	jobs, total, err := c.jobService.Browse(ctx.Request.Context(), toListingFilter(&req), page, pageSize)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to browse job listings")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromJobListings(jobs),
		Pagination: paginationInfo(page, pageSize, total),
	}, "Job listings retrieved"))
}

// GetByID returns one job listing
// @Summary Get a job listing
// @Description Returns a single listing with its employer profile
// @Tags jobs
// @Produce json
// @Param id path int true "Job listing ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobResponse} "Job listing"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{id} [get]
func (c *JobController) GetByID(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.GetByID(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJobListing(job), "Job listing retrieved"))
}

// GetMine lists the caller's own listings
// @Summary List my job listings
// @Description Returns every listing owned by the authenticated employer, drafts and closed included
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.JobResponse} "Own job listings"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/mine [get]
func (c *JobController) GetMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	jobs, err := c.jobService.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list own job listings")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJobListings(jobs), "Job listings retrieved"))
}

// Create posts a new job listing
// @Summary Create a job listing
// @Description Creates a listing owned by the authenticated employer
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job listing data"
// @Success 201 {object} dto.StructuredResponse{data=dto.JobResponse} "Job listing created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an employer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create job request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create job listing")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", job.ID).Int64("userID", userID).Msg("Job listing created")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromJobListing(job), "Job listing created"))
}

// Update edits an owned job listing
// @Summary Update a job listing
// @Description Updates the fields present in the request; the listing must belong to the caller
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Param request body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobResponse} "Job listing updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Listing belongs to another employer"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{id} [put]
func (c *JobController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update job request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.Update(ctx.Request.Context(), userID, jobID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("jobID", jobID).Int64("userID", userID).Msg("Failed to update job listing")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJobListing(job), "Job listing updated"))
}

// Delete removes an owned job listing
// @Summary Delete a job listing
// @Description Deletes a listing owned by the caller along with its applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Success 200 {object} dto.StructuredResponse "Job listing deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Listing belongs to another employer"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.Delete(ctx.Request.Context(), userID, jobID); err != nil {
		c.logger.Warn().Err(err).Int64("jobID", jobID).Int64("userID", userID).Msg("Failed to delete job listing")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", jobID).Int64("userID", userID).Msg("Job listing deleted")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Job listing deleted"))
}
