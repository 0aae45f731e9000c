package services

import (
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/pkg/auth"
	"github.com/internlink/internlink/internal/pkg/email"
	"github.com/internlink/internlink/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// Services bundles the marketplace service layer for injection into the
// controllers
type Services struct {
	AuthService        *AuthService
	ProfileService     *ProfileService
	JobService         *JobService
	ApplicationService *ApplicationService
	MessageService     *MessageService
	ReviewService      *ReviewService
	AdminService       *AdminService
	Notifier           *Notifier
}

// NewServices wires every service over the shared repositories, change
// feed and infrastructure
func NewServices(
	repos *repositories.Repositories,
	feed *changefeed.Feed,
	jwtService *auth.JWTService,
	emailService email.Service,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	notifier := NewNotifier(feed)

	return &Services{
		AuthService:        NewAuthService(repos, jwtService, emailService, logger),
		ProfileService:     NewProfileService(repos, storage, logger),
		JobService:         NewJobService(repos, feed, logger),
		ApplicationService: NewApplicationService(repos, feed, notifier, logger),
		MessageService:     NewMessageService(repos, feed, notifier, logger),
		ReviewService:      NewReviewService(repos, feed, logger),
		AdminService:       NewAdminService(repos, feed, logger),
		Notifier:           notifier,
	}
}
