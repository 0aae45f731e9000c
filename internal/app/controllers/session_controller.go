package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/authstate"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// SessionController serves the auth surface in mock mode, backed by the
// auth state container over the file-persisted identity directory. There
// is no token pair here: the container tracks a single server-side
// session, matching the mock identity contract.
type SessionController struct {
	state  *authstate.Container
	logger zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(state *authstate.Container, logger zerolog.Logger) *SessionController {
	return &SessionController{
		state:  state,
		logger: logger,
	}
}

func sessionUser(identity *authstate.Identity) dto.SessionUserResponse {
	return dto.SessionUserResponse{
		ID:      identity.ID,
		Email:   identity.Email,
		Name:    identity.Name,
		Role:    string(identity.Role),
		Profile: identity.Profile,
	}
}

// SignUp creates a mock account and signs it in
func (c *SessionController) SignUp(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	identity, err := c.state.SignUp(ctx.Request.Context(), authstate.SignUpParams{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.UserType,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Mock registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", identity.Email).Str("role", string(identity.Role)).Msg("Mock account created")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(sessionUser(identity), "Account created successfully"))
}

// SignIn starts the mock session
func (c *SessionController) SignIn(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	identity, err := c.state.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Mock login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(sessionUser(identity), "Login successful"))
}

// SignOut clears the mock session. No body: there is no token to revoke.
func (c *SessionController) SignOut(ctx *gin.Context) {
	if err := c.state.SignOut(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Logged out successfully"))
}

// Me returns the current session's identity
func (c *SessionController) Me(ctx *gin.Context) {
	state := c.state.CurrentState()
	if !state.SignedIn() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		errorDetail = errorDetail.WithDetails("No active session")

		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(sessionUser(state.User), "Current user"))
}

// UpdateProfile renames the signed-in session account
func (c *SessionController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateSessionProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.state.UpdateProfile(ctx.Request.Context(), req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Profile updated successfully"))
}

// ForgotPassword acknowledges a reset request without leaking whether
// the account exists
func (c *SessionController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.state.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil,
		"If an account exists for that address, a reset link has been sent"))
}
