package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/auth"
	"github.com/internlink/internlink/internal/pkg/email"
	"github.com/rs/zerolog"
)

// AuthService handles authentication and registration
type AuthService struct {
	userRepo         *repositories.UserRepository
	internRepo       *repositories.InternProfileRepository
	employerRepo     *repositories.EmployerProfileRepository
	approvalRepo     *repositories.ApprovalRepository
	tokenRepo        *repositories.TokenRepository
	resetTokenRepo   *repositories.PasswordResetTokenRepository
	jwtService       *auth.JWTService
	emailService     email.Service
	logger           zerolog.Logger
	resetTokenExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.Service,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         repos.UserRepository,
		internRepo:       repos.InternProfileRepository,
		employerRepo:     repos.EmployerProfileRepository,
		approvalRepo:     repos.ApprovalRepository,
		tokenRepo:        repos.TokenRepository,
		resetTokenRepo:   repos.PasswordResetTokenRepository,
		jwtService:       jwtService,
		emailService:     emailService,
		logger:           logger,
		resetTokenExpiry: time.Hour,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (s *AuthService) validateEmail(emailAddr string) error {
	if strings.TrimSpace(emailAddr) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(emailAddr) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// Register creates an account plus its role-specific profile. An employer
// registration also files a pending organization approval for the admin
// console.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, apperrors.NewAuthError("invalid email", err)
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, apperrors.NewAuthError("invalid password", err)
	}
	if req.UserType != models.RoleIntern && req.UserType != models.RoleEmployer {
		return nil, apperrors.NewAuthError("role must be INTERN or EMPLOYER", apperrors.ErrValidationFailed)
	}
	if req.UserType == models.RoleEmployer && strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.NewAuthError("company name is required for employer accounts", apperrors.ErrValidationFailed)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewAuthError("failed to check email", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAuthError("failed to hash password", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		UserType: req.UserType,
		Status:   models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.NewAuthError("failed to create user", err)
	}

	switch req.UserType {
	case models.RoleIntern:
		profile := &models.InternProfile{UserID: user.ID}
		if err := s.internRepo.Create(ctx, profile); err != nil {
			return nil, apperrors.NewAuthError("failed to create intern profile", err)
		}
		user.InternProfile = profile
	case models.RoleEmployer:
		profile := &models.EmployerProfile{UserID: user.ID, CompanyName: req.CompanyName}
		if err := s.employerRepo.Create(ctx, profile); err != nil {
			return nil, apperrors.NewAuthError("failed to create employer profile", err)
		}
		user.EmployerProfile = profile

		approval := &models.OrganizationApproval{
			UserID:      user.ID,
			CompanyName: req.CompanyName,
		}
		if err := s.approvalRepo.Create(ctx, approval); err != nil {
			return nil, apperrors.NewAuthError("failed to file organization approval", err)
		}
	}

	// Best effort: a failed welcome mail never blocks registration
	go func(toEmail, toName string) {
		if err := s.emailService.SendWelcomeEmail(toEmail, toName); err != nil {
			s.logger.Warn().Err(err).Str("email", toEmail).Msg("Failed to send welcome email")
		}
	}(user.Email, user.Name)

	s.logger.Info().
		Int64("userID", user.ID).
		Str("email", user.Email).
		Str("userType", string(user.UserType)).
		Msg("User registered")

	return user, nil
}

// Login verifies credentials and issues a token pair. Banned accounts are
// rejected even with a valid password.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, nil, apperrors.NewAuthError("failed to look up user", err)
	}
	if user == nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Warn().Str("email", emailAddr).Msg("Login failed: wrong password")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusBanned {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login rejected: account banned")
		return nil, nil, apperrors.ErrAccountBanned
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Non-fatal: login still succeeds
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, tokens, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.NewAuthError("failed to generate tokens", err)
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, expiry); err != nil {
		return nil, apperrors.NewAuthError("failed to store refresh token", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked
// and a fresh pair is issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.NewAuthError("invalid refresh token", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewAuthError("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Status == models.UserStatusBanned {
		return nil, apperrors.ErrAccountBanned
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, apperrors.NewAuthError("failed to revoke refresh token", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return apperrors.NewAuthError("failed to revoke token", err)
	}
	return nil
}

// ForgotPassword starts the reset flow. An unknown email is reported as
// success so the endpoint cannot be used to probe the directory.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperrors.NewAuthError("failed to look up user", err)
	}
	if user == nil {
		s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
		return nil
	}

	token := uuid.New().String()
	expiry := time.Now().Add(s.resetTokenExpiry)
	if err := s.resetTokenRepo.CreateToken(ctx, user.ID, token, expiry); err != nil {
		return apperrors.NewAuthError("failed to create reset token", err)
	}

	if err := s.emailService.SendPasswordReset(user.Email, user.Name, token); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		return apperrors.NewAuthError("failed to send reset email", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset email sent")
	return nil
}

// ResetPassword completes the reset flow and revokes every active session
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.validatePassword(newPassword); err != nil {
		return apperrors.NewAuthError("invalid password", err)
	}

	userID, expiry, used, err := s.resetTokenRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return apperrors.NewAuthError("invalid reset token", err)
	}
	if used {
		return apperrors.NewAuthError("reset token already used", apperrors.ErrTokenInvalid)
	}
	if expiry.Before(time.Now()) {
		return apperrors.NewAuthError("reset token expired", apperrors.ErrTokenExpired)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewAuthError("failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return apperrors.NewAuthError("failed to update password", err)
	}

	if err := s.resetTokenRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return apperrors.NewAuthError("failed to consume reset token", err)
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password reset")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

// GetUserByID fetches an account. Absence of a row is a nil result.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewAuthError("failed to look up user", err)
	}
	return user, nil
}
