package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// AdminController handles the moderation console operations
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// CheckAccess verifies the caller's admin record
// @Summary Check admin access
// @Description Confirms the caller has an active admin record and returns its level and permissions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.AdminUser} "Admin record"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/access [get]
func (c *AdminController) CheckAccess(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	admin, err := c.adminService.CheckAccess(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(admin, "Admin access confirmed"))
}

// GetPendingApprovals lists pending organization approvals
// @Summary List pending organization approvals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApprovalResponse} "Pending approvals"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/approvals [get]
func (c *AdminController) GetPendingApprovals(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	approvals, err := c.adminService.GetPendingApprovals(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApprovals(approvals), "Pending approvals retrieved"))
}

// ApproveOrganization approves an employer organization
// @Summary Approve an organization
// @Description Marks the approval request approved; the decision is audit logged
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Approval ID"
// @Param request body dto.ReviewApprovalRequest false "Optional admin notes"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApprovalResponse} "Organization approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Approval not found"
// @Failure 409 {object} dto.ErrorResponse "Approval already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/approvals/{id}/approve [post]
func (c *AdminController) ApproveOrganization(ctx *gin.Context) {
	c.reviewOrganization(ctx, true)
}

// RejectOrganization rejects an employer organization
// @Summary Reject an organization
// @Description Marks the approval request rejected; the decision is audit logged
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Approval ID"
// @Param request body dto.ReviewApprovalRequest false "Optional admin notes"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApprovalResponse} "Organization rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Approval not found"
// @Failure 409 {object} dto.ErrorResponse "Approval already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/approvals/{id}/reject [post]
func (c *AdminController) RejectOrganization(ctx *gin.Context) {
	c.reviewOrganization(ctx, false)
}

func (c *AdminController) reviewOrganization(ctx *gin.Context, approve bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	approvalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Notes are optional, an empty body is fine
	var req dto.ReviewApprovalRequest
	_ = ctx.ShouldBindJSON(&req)

	var (
		approval *models.OrganizationApproval
		err      error
		message  string
	)
	if approve {
		approval, err = c.adminService.ApproveOrganization(ctx.Request.Context(), userID, approvalID, &req)
		message = "Organization approved"
	} else {
		approval, err = c.adminService.RejectOrganization(ctx.Request.Context(), userID, approvalID, &req)
		message = "Organization rejected"
	}
	if err != nil {
		c.logger.Warn().Err(err).Int64("approvalID", approvalID).Int64("adminUserID", userID).Msg("Failed to review organization")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("approvalID", approvalID).
		Int64("adminUserID", userID).
		Bool("approved", approve).
		Msg("Organization approval reviewed")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApproval(approval), message))
}

// BanUser bans an account
// @Summary Ban a user
// @Description Marks the account banned with a reason; banned users cannot sign in. Audit logged.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Param request body dto.BanUserRequest true "Ban reason"
// @Success 200 {object} dto.StructuredResponse "User banned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self-ban attempt"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/ban [post]
func (c *AdminController) BanUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.BanUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.adminService.BanUser(ctx.Request.Context(), userID, targetID, &req); err != nil {
		c.logger.Warn().Err(err).Int64("targetID", targetID).Int64("adminUserID", userID).Msg("Failed to ban user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("targetID", targetID).Int64("adminUserID", userID).Msg("User banned")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "User banned"))
}

// UnbanUser lifts a ban
// @Summary Unban a user
// @Description Restores a banned account to active. Audit logged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} dto.StructuredResponse "User unbanned"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/unban [post]
func (c *AdminController) UnbanUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.UnbanUser(ctx.Request.Context(), userID, targetID); err != nil {
		c.logger.Warn().Err(err).Int64("targetID", targetID).Int64("adminUserID", userID).Msg("Failed to unban user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("targetID", targetID).Int64("adminUserID", userID).Msg("User unbanned")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "User unbanned"))
}

// DeleteUser removes an account
// @Summary Delete a user
// @Description Permanently deletes the account and its dependent rows. Audit logged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} dto.StructuredResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or self-delete attempt"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), userID, targetID); err != nil {
		c.logger.Warn().Err(err).Int64("targetID", targetID).Int64("adminUserID", userID).Msg("Failed to delete user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("targetID", targetID).Int64("adminUserID", userID).Msg("User deleted")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "User deleted"))
}

// ModerateJob sets the moderation status of a listing
// @Summary Moderate a job listing
// @Description Approves, rejects or flags a listing; only approved listings are publicly visible. Audit logged.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Param request body dto.ModerateJobRequest true "Moderation decision"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobResponse} "Listing moderated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/jobs/{id}/moderate [post]
func (c *AdminController) ModerateJob(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModerateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.adminService.ModerateJob(ctx.Request.Context(), userID, jobID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("jobID", jobID).Int64("adminUserID", userID).Msg("Failed to moderate job listing")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("jobID", jobID).
		Str("moderationStatus", string(req.ModerationStatus)).
		Int64("adminUserID", userID).
		Msg("Job listing moderated")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJobListing(job), "Job listing moderated"))
}

// DeleteJob removes a listing
// @Summary Delete a job listing (admin)
// @Description Deletes any listing regardless of owner. Audit logged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Success 200 {object} dto.StructuredResponse "Listing deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/jobs/{id} [delete]
func (c *AdminController) DeleteJob(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteJob(ctx.Request.Context(), userID, jobID); err != nil {
		c.logger.Warn().Err(err).Int64("jobID", jobID).Int64("adminUserID", userID).Msg("Failed to delete job listing")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", jobID).Int64("adminUserID", userID).Msg("Job listing deleted by admin")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Job listing deleted"))
}

// CreateReport files a report against a user or listing
// @Summary Report a user or listing
// @Description Files a report for the moderation queue; available to any authenticated user
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequest true "Report data"
// @Success 201 {object} dto.StructuredResponse{data=dto.ReportResponse} "Report filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or no target"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *AdminController) CreateReport(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.adminService.CreateReport(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("reporterID", userID).Msg("Failed to file report")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("reportID", report.ID).Int64("reporterID", userID).Msg("Report filed")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromReport(report), "Report filed"))
}

// GetReports lists user reports
// @Summary List reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(pending, resolved, dismissed)
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ReportResponse} "Reports"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reports [get]
func (c *AdminController) GetReports(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var status *models.ReportStatus
	if raw := ctx.Query("status"); raw != "" {
		value := models.ReportStatus(raw)
		status = &value
	}

	reports, err := c.adminService.GetReports(ctx.Request.Context(), userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromReports(reports), "Reports retrieved"))
}

// HandleReport resolves or dismisses a report
// @Summary Handle a report
// @Description Marks the report resolved or dismissed with optional notes. Audit logged.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.HandleReportRequest true "Resolution"
// @Success 200 {object} dto.StructuredResponse{data=dto.ReportResponse} "Report handled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or status"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reports/{id} [put]
func (c *AdminController) HandleReport(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.HandleReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.adminService.HandleReport(ctx.Request.Context(), userID, reportID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("reportID", reportID).Int64("adminUserID", userID).Msg("Failed to handle report")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("reportID", reportID).
		Str("status", string(req.Status)).
		Int64("adminUserID", userID).
		Msg("Report handled")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromReport(report), "Report handled"))
}

// GetMetrics returns the dashboard counters
// @Summary Admin dashboard metrics
// @Description Returns platform-wide counters collected by parallel count queries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.DashboardMetrics} "Metrics"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/metrics [get]
func (c *AdminController) GetMetrics(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	metrics, err := c.adminService.GetMetrics(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("adminUserID", userID).Msg("Failed to collect dashboard metrics")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(metrics, "Metrics retrieved"))
}

// GetTrends returns the application trends series
// @Summary Application trends
// @Description Returns a gapless daily series of application counts over the requested window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window size in days (default 30, max 365)"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.TrendPoint} "Trend series"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trends [get]
func (c *AdminController) GetTrends(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if days > 365 {
		days = 365
	}

	trends, err := c.adminService.GetTrends(ctx.Request.Context(), userID, days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(trends, "Trends retrieved"))
}

// GetAuditLogs lists audit log entries
// @Summary List audit logs
// @Description Returns moderation actions newest first, optionally filtered by admin or action type
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param adminId query int false "Filter by acting admin"
// @Param actionType query string false "Filter by action type"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Audit logs"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/audit-logs [get]
func (c *AdminController) GetAuditLogs(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var filterAdminID *int64
	if raw := ctx.Query("adminId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filterAdminID = &id
		}
	}
	var actionType *string
	if raw := ctx.Query("actionType"); raw != "" {
		actionType = &raw
	}
	page, pageSize := parsePagination(ctx)

	entries, total, err := c.adminService.GetAuditLogs(ctx.Request.Context(), userID, filterAdminID, actionType, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.FromAuditLog(entry))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      responses,
		Pagination: paginationInfo(page, pageSize, total),
	}, "Audit logs retrieved"))
}
