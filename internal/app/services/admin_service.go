package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AdminService handles the administrative console: organization
// approvals, bans, listing moderation, report handling and the
// dashboard metrics. Every privileged mutation appends an audit log
// entry; audit failures are logged but never roll the mutation back.
type AdminService struct {
	userRepo     *repositories.UserRepository
	jobRepo      *repositories.JobListingRepository
	appRepo      *repositories.ApplicationRepository
	approvalRepo *repositories.ApprovalRepository
	reportRepo   *repositories.ReportRepository
	auditRepo    *repositories.AuditLogRepository
	feed         *changefeed.Feed
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repositories.Repositories, feed *changefeed.Feed, logger zerolog.Logger) *AdminService {
	return &AdminService{
		userRepo:     repos.UserRepository,
		jobRepo:      repos.JobListingRepository,
		appRepo:      repos.ApplicationRepository,
		approvalRepo: repos.ApprovalRepository,
		reportRepo:   repos.ReportRepository,
		auditRepo:    repos.AuditLogRepository,
		feed:         feed,
		logger:       logger,
	}
}

// CheckAccess verifies the caller has an admin_users row. The JWT role
// claim alone is not enough for the console, membership is re-checked
// against the table on every privileged call.
func (s *AdminService) CheckAccess(ctx context.Context, userID int64) (*models.AdminUser, error) {
	admin, err := s.userRepo.GetAdminByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to verify admin access", err)
	}
	if admin == nil {
		return nil, apperrors.NewAdminError("", apperrors.ErrNotAnAdmin)
	}
	return admin, nil
}

// audit appends one audit log entry. Best effort: a failed write is
// logged and swallowed so the admin action itself stands.
func (s *AdminService) audit(ctx context.Context, adminID int64, actionType, targetType string, targetID int64, oldValues, newValues map[string]interface{}) {
	entry := &models.AuditLogEntry{
		AdminID:    adminID,
		ActionType: actionType,
		TargetType: targetType,
		TargetID:   targetID,
		OldValues:  oldValues,
		NewValues:  newValues,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Int64("adminID", adminID).
			Str("actionType", actionType).
			Int64("targetID", targetID).
			Msg("Failed to write audit log entry")
	}
}

// GetPendingApprovals lists organization approval requests awaiting a
// decision, oldest first
func (s *AdminService) GetPendingApprovals(ctx context.Context, adminUserID int64) ([]*models.OrganizationApproval, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}

	approvals, err := s.approvalRepo.GetPending(ctx)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve pending approvals", err)
	}
	return approvals, nil
}

// reviewOrganization moves an approval from pending to a terminal state.
// The guarded update makes the decision stick exactly once.
func (s *AdminService) reviewOrganization(ctx context.Context, adminUserID, approvalID int64, status models.ApprovalStatus, notes *string, auditAction string) (*models.OrganizationApproval, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}

	before, err := s.approvalRepo.GetByID(ctx, approvalID)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve approval", err)
	}
	if before == nil {
		return nil, apperrors.NewAdminError("", apperrors.ErrApprovalNotFound)
	}

	now := time.Now()
	if err := s.approvalRepo.Review(ctx, approvalID, adminUserID, status, notes, now); err != nil {
		return nil, apperrors.NewAdminError("failed to review approval", err)
	}

	after, err := s.approvalRepo.GetByID(ctx, approvalID)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve reviewed approval", err)
	}

	s.logger.Info().
		Int64("approvalID", approvalID).
		Int64("adminID", adminUserID).
		Str("status", string(status)).
		Msg("Organization approval reviewed")

	s.audit(ctx, adminUserID, auditAction, "organization_approval", approvalID,
		map[string]interface{}{"status": string(before.Status)},
		map[string]interface{}{"status": string(status), "adminNotes": notes})

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionUpdate,
		Table:  "organization_approvals",
		RowID:  approvalID,
		Row:    after,
	})

	return after, nil
}

// ApproveOrganization accepts a pending approval request
func (s *AdminService) ApproveOrganization(ctx context.Context, adminUserID, approvalID int64, req *dto.ReviewApprovalRequest) (*models.OrganizationApproval, error) {
	return s.reviewOrganization(ctx, adminUserID, approvalID, models.ApprovalApproved, req.AdminNotes, models.AuditApproveOrganization)
}

// RejectOrganization declines a pending approval request
func (s *AdminService) RejectOrganization(ctx context.Context, adminUserID, approvalID int64, req *dto.ReviewApprovalRequest) (*models.OrganizationApproval, error) {
	return s.reviewOrganization(ctx, adminUserID, approvalID, models.ApprovalRejected, req.AdminNotes, models.AuditRejectOrganization)
}

// BanUser bans an account with a recorded reason. Banned accounts fail
// sign-in until unbanned.
func (s *AdminService) BanUser(ctx context.Context, adminUserID, targetUserID int64, req *dto.BanUserRequest) error {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return err
	}
	if adminUserID == targetUserID {
		return apperrors.NewAdminError("admins cannot ban themselves", nil)
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return apperrors.NewAdminError("failed to retrieve user", err)
	}
	if target == nil {
		return apperrors.NewAdminError("", apperrors.ErrUserNotFound)
	}

	if err := s.userRepo.Ban(ctx, targetUserID, adminUserID, req.Reason, time.Now()); err != nil {
		return apperrors.NewAdminError("failed to ban user", err)
	}

	s.logger.Info().Int64("userID", targetUserID).Int64("adminID", adminUserID).Msg("User banned")
	s.audit(ctx, adminUserID, models.AuditBanUser, "user", targetUserID,
		map[string]interface{}{"status": string(target.Status)},
		map[string]interface{}{"status": string(models.UserStatusBanned), "reason": req.Reason})

	return nil
}

// UnbanUser lifts a ban
func (s *AdminService) UnbanUser(ctx context.Context, adminUserID, targetUserID int64) error {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return apperrors.NewAdminError("failed to retrieve user", err)
	}
	if target == nil {
		return apperrors.NewAdminError("", apperrors.ErrUserNotFound)
	}

	if err := s.userRepo.Unban(ctx, targetUserID); err != nil {
		return apperrors.NewAdminError("failed to unban user", err)
	}

	s.logger.Info().Int64("userID", targetUserID).Int64("adminID", adminUserID).Msg("User unbanned")
	s.audit(ctx, adminUserID, models.AuditUnbanUser, "user", targetUserID,
		map[string]interface{}{"status": string(target.Status)},
		map[string]interface{}{"status": string(models.UserStatusActive)})

	return nil
}

// DeleteUser removes an account and its dependent rows
func (s *AdminService) DeleteUser(ctx context.Context, adminUserID, targetUserID int64) error {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return err
	}
	if adminUserID == targetUserID {
		return apperrors.NewAdminError("admins cannot delete themselves", nil)
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return apperrors.NewAdminError("failed to retrieve user", err)
	}
	if target == nil {
		return apperrors.NewAdminError("", apperrors.ErrUserNotFound)
	}

	if err := s.userRepo.Delete(ctx, targetUserID); err != nil {
		return apperrors.NewAdminError("failed to delete user", err)
	}

	s.logger.Info().Int64("userID", targetUserID).Int64("adminID", adminUserID).Msg("User deleted")
	s.audit(ctx, adminUserID, models.AuditDeleteUser, "user", targetUserID,
		map[string]interface{}{"email": target.Email, "userType": string(target.UserType)}, nil)

	return nil
}

// ModerateJob records a moderation decision on a listing
func (s *AdminService) ModerateJob(ctx context.Context, adminUserID, jobID int64, req *dto.ModerateJobRequest) (*models.JobListing, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve job listing", err)
	}
	if job == nil {
		return nil, apperrors.NewAdminError("", apperrors.ErrJobNotFound)
	}

	if err := s.jobRepo.Moderate(ctx, jobID, adminUserID, req.ModerationStatus, req.ModerationNotes, time.Now()); err != nil {
		return nil, apperrors.NewAdminError("failed to moderate job listing", err)
	}

	oldStatus := job.ModerationStatus
	job.ModerationStatus = req.ModerationStatus
	job.ModerationNotes = req.ModerationNotes

	s.logger.Info().
		Int64("jobID", jobID).
		Int64("adminID", adminUserID).
		Str("moderationStatus", string(req.ModerationStatus)).
		Msg("Job listing moderated")

	s.audit(ctx, adminUserID, models.AuditModerateJob, "job_listing", jobID,
		map[string]interface{}{"moderationStatus": string(oldStatus)},
		map[string]interface{}{"moderationStatus": string(req.ModerationStatus), "moderationNotes": req.ModerationNotes})

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionUpdate,
		Table:  "job_listings",
		RowID:  jobID,
		Row:    job,
	})

	return job, nil
}

// DeleteJob removes a listing regardless of ownership
func (s *AdminService) DeleteJob(ctx context.Context, adminUserID, jobID int64) error {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return apperrors.NewAdminError("failed to retrieve job listing", err)
	}
	if job == nil {
		return apperrors.NewAdminError("", apperrors.ErrJobNotFound)
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return apperrors.NewAdminError("failed to delete job listing", err)
	}

	s.logger.Info().Int64("jobID", jobID).Int64("adminID", adminUserID).Msg("Job listing deleted by admin")
	s.audit(ctx, adminUserID, models.AuditDeleteJob, "job_listing", jobID,
		map[string]interface{}{"title": job.Title, "employerId": job.EmployerID}, nil)

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionDelete,
		Table:  "job_listings",
		RowID:  jobID,
	})

	return nil
}

// CreateReport files a user report. Reporting does not require admin
// access, any signed-in account can flag a user or listing.
func (s *AdminService) CreateReport(ctx context.Context, reporterID int64, req *dto.CreateReportRequest) (*models.UserReport, error) {
	if req.ReportedUserID == nil && req.ReportedJobID == nil {
		return nil, apperrors.NewBadRequestError("a report must target a user or a job listing")
	}

	report := &models.UserReport{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		ReportedJobID:  req.ReportedJobID,
		Reason:         req.Reason,
		Details:        req.Details,
		Status:         models.ReportPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create report", err)
	}

	s.logger.Info().Int64("reportID", report.ID).Int64("reporterID", reporterID).Msg("Report filed")
	return report, nil
}

// GetReports lists reports, optionally filtered by handling state
func (s *AdminService) GetReports(ctx context.Context, adminUserID int64, status *models.ReportStatus) ([]*models.UserReport, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.GetAll(ctx, status)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve reports", err)
	}
	return reports, nil
}

// HandleReport resolves or dismisses a report
func (s *AdminService) HandleReport(ctx context.Context, adminUserID, reportID int64, req *dto.HandleReportRequest) (*models.UserReport, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}
	if req.Status != models.ReportResolved && req.Status != models.ReportDismissed {
		return nil, apperrors.NewBadRequestError("report status must be resolved or dismissed")
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to retrieve report", err)
	}
	if report == nil {
		return nil, apperrors.NewAdminError("", apperrors.ErrReportNotFound)
	}

	now := time.Now()
	if err := s.reportRepo.Handle(ctx, reportID, adminUserID, req.Status, req.AdminNotes, now); err != nil {
		return nil, apperrors.NewAdminError("failed to handle report", err)
	}

	oldStatus := report.Status
	report.Status = req.Status
	report.AdminNotes = req.AdminNotes
	report.HandledBy = &adminUserID
	report.HandledAt = &now

	s.logger.Info().
		Int64("reportID", reportID).
		Int64("adminID", adminUserID).
		Str("status", string(req.Status)).
		Msg("Report handled")

	s.audit(ctx, adminUserID, models.AuditHandleReport, "user_report", reportID,
		map[string]interface{}{"status": string(oldStatus)},
		map[string]interface{}{"status": string(req.Status), "adminNotes": req.AdminNotes})

	return report, nil
}

// GetMetrics collects the dashboard counters. The counts run in
// parallel and the first failure wins.
func (s *AdminService) GetMetrics(ctx context.Context, adminUserID int64) (*dto.DashboardMetrics, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}

	var metrics dto.DashboardMetrics

	counts := []struct {
		dst   *int64
		fetch func(context.Context) (int64, error)
	}{
		{&metrics.TotalUsers, s.userRepo.Count},
		{&metrics.TotalInterns, func(ctx context.Context) (int64, error) {
			return s.userRepo.CountByRole(ctx, models.RoleIntern)
		}},
		{&metrics.TotalEmployers, func(ctx context.Context) (int64, error) {
			return s.userRepo.CountByRole(ctx, models.RoleEmployer)
		}},
		{&metrics.TotalJobs, s.jobRepo.Count},
		{&metrics.ActiveJobs, func(ctx context.Context) (int64, error) {
			return s.jobRepo.CountByStatus(ctx, models.JobStatusActive)
		}},
		{&metrics.TotalApplications, s.appRepo.Count},
		{&metrics.PendingApprovals, s.approvalRepo.CountPending},
		{&metrics.PendingReports, s.reportRepo.CountPending},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, c := range counts {
		wg.Add(1)
		go func(dst *int64, fetch func(context.Context) (int64, error)) {
			defer wg.Done()
			n, err := fetch(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			*dst = n
		}(c.dst, c.fetch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, apperrors.NewAdminError("failed to collect dashboard metrics", firstErr)
	}
	return &metrics, nil
}

// GetTrends returns the daily application counts for the last N days as
// a gapless, chronologically ordered series
func (s *AdminService) GetTrends(ctx context.Context, adminUserID int64, days int) ([]dto.TrendPoint, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	perDay, err := s.appRepo.CountPerDay(ctx, days)
	if err != nil {
		return nil, apperrors.NewAdminError("failed to compute application trends", err)
	}

	points := make([]dto.TrendPoint, 0, days)
	today := time.Now()
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, dto.TrendPoint{Date: date, Count: perDay[date]})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return points, nil
}

// GetAuditLogs pages through the audit trail, optionally filtered by
// admin or action type
func (s *AdminService) GetAuditLogs(ctx context.Context, adminUserID int64, filterAdminID *int64, actionType *string, page, pageSize int) ([]*models.AuditLogEntry, int64, error) {
	if _, err := s.CheckAccess(ctx, adminUserID); err != nil {
		return nil, 0, err
	}

	entries, total, err := s.auditRepo.GetAll(ctx, filterAdminID, actionType, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.NewAdminError("failed to retrieve audit logs", err)
	}
	return entries, total, nil
}
