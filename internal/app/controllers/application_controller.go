package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// ApplicationController handles internship application operations
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Apply submits an application to a job listing
// @Summary Apply to a job listing
// @Description Creates an application for the authenticated intern; one application per listing
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Application data"
// @Success 201 {object} dto.StructuredResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or listing not open"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied to this listing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid apply request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	app, err := c.applicationService.Apply(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("jobID", req.JobID).Int64("userID", userID).Msg("Failed to apply")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", app.ID).Int64("jobID", req.JobID).Int64("userID", userID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromApplication(app), "Application submitted"))
}

// GetMine lists the caller's applications
// @Summary List my applications
// @Description Returns the authenticated intern's applications with their listings, newest first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApplicationResponse} "Applications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/mine [get]
func (c *ApplicationController) GetMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	apps, err := c.applicationService.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list applications")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplications(apps), "Applications retrieved"))
}

// GetForJob lists applications received on one listing
// @Summary List applications for a job listing
// @Description Returns the applications on a listing owned by the authenticated employer
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApplicationResponse} "Applications"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Listing belongs to another employer"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{id}/applications [get]
func (c *ApplicationController) GetForJob(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.applicationService.GetForJob(ctx.Request.Context(), userID, jobID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("jobID", jobID).Int64("userID", userID).Msg("Failed to list job applications")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplications(apps), "Applications retrieved"))
}

// UpdateStatus moves an application through its pipeline
// @Summary Update application status
// @Description Employers move applications they received between review stages; the applicant is notified
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApplicationResponse} "Application updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Application is not on the caller's listing"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	appID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid status update request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), userID, currentRole(ctx), appID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("applicationID", appID).Int64("userID", userID).Msg("Failed to update application status")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("applicationID", appID).
		Str("status", string(req.Status)).
		Int64("userID", userID).
		Msg("Application status updated")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplication(app), "Application status updated"))
}

// Withdraw retracts the caller's application
// @Summary Withdraw an application
// @Description Marks the authenticated intern's application as withdrawn
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApplicationResponse} "Application withdrawn"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another intern"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/withdraw [post]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	appID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.Withdraw(ctx.Request.Context(), userID, appID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("applicationID", appID).Int64("userID", userID).Msg("Failed to withdraw application")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", appID).Int64("userID", userID).Msg("Application withdrawn")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplication(app), "Application withdrawn"))
}
