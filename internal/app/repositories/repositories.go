package repositories

import (
	"github.com/internlink/internlink/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	InternProfileRepository      *InternProfileRepository
	EmployerProfileRepository    *EmployerProfileRepository
	JobListingRepository         *JobListingRepository
	ApplicationRepository        *ApplicationRepository
	MessageRepository            *MessageRepository
	ReviewRepository             *ReviewRepository
	ApprovalRepository           *ApprovalRepository
	ReportRepository             *ReportRepository
	AuditLogRepository           *AuditLogRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db db.Querier) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		InternProfileRepository:      NewInternProfileRepository(db),
		EmployerProfileRepository:    NewEmployerProfileRepository(db),
		JobListingRepository:         NewJobListingRepository(db),
		ApplicationRepository:        NewApplicationRepository(db),
		MessageRepository:            NewMessageRepository(db),
		ReviewRepository:             NewReviewRepository(db),
		ApprovalRepository:           NewApprovalRepository(db),
		ReportRepository:             NewReportRepository(db),
		AuditLogRepository:           NewAuditLogRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
