package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// ReviewApprovalRequest represents the admin decision on an organization
// approval request
type ReviewApprovalRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// BanUserRequest represents an admin ban action
type BanUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ModerateJobRequest represents an admin moderation decision on a listing
type ModerateJobRequest struct {
	ModerationStatus models.ModerationStatus `json:"moderationStatus" binding:"required"`
	ModerationNotes  *string                 `json:"moderationNotes,omitempty"`
}

// HandleReportRequest represents an admin resolution of a user report
type HandleReportRequest struct {
	Status     models.ReportStatus `json:"status" binding:"required"`
	AdminNotes *string             `json:"adminNotes,omitempty"`
}

// CreateReportRequest represents a user filing a report
type CreateReportRequest struct {
	ReportedUserID *int64  `json:"reportedUserId,omitempty"`
	ReportedJobID  *int64  `json:"reportedJobId,omitempty"`
	Reason         string  `json:"reason" binding:"required"`
	Details        *string `json:"details,omitempty"`
}

// ApprovalResponse represents an organization approval request
type ApprovalResponse struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	CompanyName string        `json:"companyName"`
	Industry    *string       `json:"industry,omitempty"`
	Website     *string       `json:"website,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      string        `json:"status" enums:"pending,approved,rejected"`
	AdminNotes  *string       `json:"adminNotes,omitempty"`
	ReviewedBy  *int64        `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time    `json:"reviewedAt,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
	Submitter   *UserResponse `json:"submitter,omitempty"`
}

// ReportResponse represents a user report
type ReportResponse struct {
	ID             int64         `json:"id"`
	ReporterID     int64         `json:"reporterId"`
	ReportedUserID *int64        `json:"reportedUserId,omitempty"`
	ReportedJobID  *int64        `json:"reportedJobId,omitempty"`
	Reason         string        `json:"reason"`
	Details        *string       `json:"details,omitempty"`
	Status         string        `json:"status" enums:"pending,resolved,dismissed"`
	AdminNotes     *string       `json:"adminNotes,omitempty"`
	HandledBy      *int64        `json:"handledBy,omitempty"`
	HandledAt      *time.Time    `json:"handledAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	Reporter       *UserResponse `json:"reporter,omitempty"`
}

// AuditLogResponse represents one audit log entry
type AuditLogResponse struct {
	ID         int64                  `json:"id"`
	AdminID    int64                  `json:"adminId"`
	ActionType string                 `json:"actionType"`
	TargetType string                 `json:"targetType"`
	TargetID   int64                  `json:"targetId"`
	OldValues  map[string]interface{} `json:"oldValues,omitempty"`
	NewValues  map[string]interface{} `json:"newValues,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	Admin      *UserResponse          `json:"admin,omitempty"`
}

// DashboardMetrics aggregates the platform counters shown on the admin
// dashboard. The counters are collected by parallel count queries.
type DashboardMetrics struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalInterns        int64 `json:"totalInterns"`
	TotalEmployers      int64 `json:"totalEmployers"`
	TotalJobs           int64 `json:"totalJobs"`
	ActiveJobs          int64 `json:"activeJobs"`
	TotalApplications   int64 `json:"totalApplications"`
	PendingApprovals    int64 `json:"pendingApprovals"`
	PendingReports      int64 `json:"pendingReports"`
}

// TrendPoint is one day of the application trends series
type TrendPoint struct {
	Date  string `json:"date" example:"2026-08-20"`
	Count int64  `json:"count"`
}

// FromApproval converts a models.OrganizationApproval to an ApprovalResponse
func FromApproval(a *models.OrganizationApproval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		CompanyName: a.CompanyName,
		Industry:    a.Industry,
		Website:     a.Website,
		Description: a.Description,
		Status:      string(a.Status),
		AdminNotes:  a.AdminNotes,
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		SubmittedAt: a.SubmittedAt,
	}
	if a.Submitter != nil {
		submitter := FromUser(a.Submitter)
		resp.Submitter = &submitter
	}
	return resp
}

// FromApprovals converts a slice of organization approvals
func FromApprovals(approvals []*models.OrganizationApproval) []ApprovalResponse {
	responses := make([]ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		responses = append(responses, FromApproval(a))
	}
	return responses
}

// FromReport converts a models.UserReport to a ReportResponse
func FromReport(r *models.UserReport) ReportResponse {
	resp := ReportResponse{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		ReportedJobID:  r.ReportedJobID,
		Reason:         r.Reason,
		Details:        r.Details,
		Status:         string(r.Status),
		AdminNotes:     r.AdminNotes,
		HandledBy:      r.HandledBy,
		HandledAt:      r.HandledAt,
		CreatedAt:      r.CreatedAt,
	}
	if r.Reporter != nil {
		reporter := FromUser(r.Reporter)
		resp.Reporter = &reporter
	}
	return resp
}

// FromReports converts a slice of user reports
func FromReports(reports []*models.UserReport) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, FromReport(r))
	}
	return responses
}

// FromAuditLog converts a models.AuditLogEntry to an AuditLogResponse
func FromAuditLog(entry *models.AuditLogEntry) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         entry.ID,
		AdminID:    entry.AdminID,
		ActionType: entry.ActionType,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		OldValues:  entry.OldValues,
		NewValues:  entry.NewValues,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.Admin != nil {
		admin := FromUser(entry.Admin)
		resp.Admin = &admin
	}
	return resp
}
