package models

import (
	"time"
)

// ApprovalStatus is the state of an organization approval request.
// It transitions exactly once, from pending to a terminal value.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// OrganizationApproval defines a row of the 'organization_approvals' table
type OrganizationApproval struct {
	ID           int64          `json:"id" db:"id"`
	UserID       int64          `json:"userId" db:"user_id"` // Submitting employer account
	CompanyName  string         `json:"companyName" db:"company_name"`
	Industry     *string        `json:"industry,omitempty" db:"industry"`
	Website      *string        `json:"website,omitempty" db:"website"`
	Description  *string        `json:"description,omitempty" db:"description"`
	Status       ApprovalStatus `json:"status" db:"status" example:"pending"`
	AdminNotes   *string        `json:"adminNotes,omitempty" db:"admin_notes"`
	ReviewedBy   *int64         `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty" db:"reviewed_at"`
	SubmittedAt  time.Time      `json:"submittedAt" db:"submitted_at"`
	Submitter    *User          `json:"submitter,omitempty"` // Relation, no db tag
}

// ReportStatus is the handling state of a user report
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// UserReport defines a row of the 'user_reports' table
type UserReport struct {
	ID             int64        `json:"id" db:"id"`
	ReporterID     int64        `json:"reporterId" db:"reporter_id"`
	ReportedUserID *int64       `json:"reportedUserId,omitempty" db:"reported_user_id"`
	ReportedJobID  *int64       `json:"reportedJobId,omitempty" db:"reported_job_id"`
	Reason         string       `json:"reason" db:"reason"`
	Details        *string      `json:"details,omitempty" db:"details"`
	Status         ReportStatus `json:"status" db:"status" example:"pending"`
	AdminNotes     *string      `json:"adminNotes,omitempty" db:"admin_notes"`
	HandledBy      *int64       `json:"handledBy,omitempty" db:"handled_by"`
	HandledAt      *time.Time   `json:"handledAt,omitempty" db:"handled_at"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	Reporter       *User        `json:"reporter,omitempty"`     // Relation, no db tag
	ReportedUser   *User        `json:"reportedUser,omitempty"` // Relation, no db tag
	ReportedJob    *JobListing  `json:"reportedJob,omitempty"`  // Relation, no db tag
}
