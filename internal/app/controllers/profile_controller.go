package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// ProfileController handles intern and employer profile operations
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetMyInternProfile returns the caller's intern profile
// @Summary Get my intern profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.InternProfileResponse} "Intern profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/intern/me [get]
func (c *ProfileController) GetMyInternProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	c.getInternProfile(ctx, userID)
}

// GetInternProfile returns an intern profile by user ID
// @Summary Get an intern profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.InternProfileResponse} "Intern profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/intern/{userId} [get]
func (c *ProfileController) GetInternProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	c.getInternProfile(ctx, userID)
}

func (c *ProfileController) getInternProfile(ctx *gin.Context, userID int64) {
	profile, err := c.profileService.GetInternProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromInternProfile(profile), "Intern profile retrieved"))
}

// UpdateInternProfile edits the caller's intern profile
// @Summary Update my intern profile
// @Description Updates the fields present in the request, leaving the rest untouched
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateInternProfileRequest true "Fields to update"
// @Success 200 {object} dto.StructuredResponse{data=dto.InternProfileResponse} "Intern profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/intern/me [put]
func (c *ProfileController) UpdateInternProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateInternProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid intern profile update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateInternProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update intern profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromInternProfile(profile), "Intern profile updated"))
}

// GetMyEmployerProfile returns the caller's employer profile
// @Summary Get my employer profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.EmployerProfileResponse} "Employer profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/employer/me [get]
func (c *ProfileController) GetMyEmployerProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	c.getEmployerProfile(ctx, userID)
}

// GetEmployerProfile returns an employer profile by user ID
// @Summary Get an employer profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.EmployerProfileResponse} "Employer profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/employer/{userId} [get]
func (c *ProfileController) GetEmployerProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	c.getEmployerProfile(ctx, userID)
}

func (c *ProfileController) getEmployerProfile(ctx *gin.Context, userID int64) {
	profile, err := c.profileService.GetEmployerProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromEmployerProfile(profile), "Employer profile retrieved"))
}

// UpdateEmployerProfile edits the caller's employer profile
// @Summary Update my employer profile
// @Description Updates the fields present in the request, leaving the rest untouched
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEmployerProfileRequest true "Fields to update"
// @Success 200 {object} dto.StructuredResponse{data=dto.EmployerProfileResponse} "Employer profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/employer/me [put]
func (c *ProfileController) UpdateEmployerProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEmployerProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid employer profile update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateEmployerProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update employer profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromEmployerProfile(profile), "Employer profile updated"))
}

// UpdateAccount edits the account-level fields shared by both roles
// @Summary Update account details
// @Description Updates display name and optionally the profile picture via multipart form
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Display name"
// @Param picture formData file false "Profile picture"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Account updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/account [put]
func (c *ProfileController) UpdateAccount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	name := ctx.PostForm("name")
	if name == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Name is required").WithField("name")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// Picture is optional
	picture, err := ctx.FormFile("picture")
	if err != nil && err != http.ErrMissingFile {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.profileService.UpdateAccount(ctx.Request.Context(), userID, name, picture)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update account")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "Account updated"))
}

// UploadResume stores the caller's resume file
// @Summary Upload resume
// @Description Stores a PDF or Word resume and records its URL on the intern profile
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume file (pdf, doc, docx)"
// @Success 200 {object} dto.StructuredResponse{data=map[string]string} "Resume uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported extension"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/intern/resume [post]
func (c *ProfileController) UploadResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Resume file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.profileService.UploadResume(ctx.Request.Context(), userID, file)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to upload resume")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Str("url", url).Msg("Resume uploaded")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(map[string]string{"resumeUrl": url}, "Resume uploaded"))
}

// UploadLogo stores the caller's company logo
// @Summary Upload company logo
// @Description Stores an image and records its URL on the employer profile
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Logo file (png, jpg, jpeg, svg, webp)"
// @Success 200 {object} dto.StructuredResponse{data=map[string]string} "Logo uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported extension"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/employer/logo [post]
func (c *ProfileController) UploadLogo(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Logo file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.profileService.UploadLogo(ctx.Request.Context(), userID, file)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to upload logo")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Str("url", url).Msg("Logo uploaded")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(map[string]string{"logoUrl": url}, "Logo uploaded"))
}
