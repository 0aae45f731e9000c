package models

import (
	"time"
)

// JobStatus is the lifecycle state of a job listing
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// JobType is the work arrangement of a listing
type JobType string

const (
	JobTypeRemote   JobType = "remote"
	JobTypeInPerson JobType = "in-person"
	JobTypeHybrid   JobType = "hybrid"
)

// ModerationStatus is the admin moderation state of a listing
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
	ModerationFlagged  ModerationStatus = "flagged"
)

// JobListing defines the listing model based on the 'job_listings' table
type JobListing struct {
	ID                  int64            `json:"id" db:"id" example:"42"`
	EmployerID          int64            `json:"employerId" db:"employer_id"`                   // Owning employer profile
	Title               string           `json:"title" db:"title" example:"Backend Intern"`     // Position title
	Description         string           `json:"description" db:"description"`                  // Full description text
	Requirements        []string         `json:"requirements" db:"requirements"`                // Requirement bullet points (JSONB)
	SkillsRequired      []string         `json:"skillsRequired" db:"skills_required"`           // Required skills (JSONB)
	Location            string           `json:"location" db:"location" example:"Berlin"`       //
	JobType             JobType          `json:"jobType" db:"job_type" example:"hybrid"`        // remote, in-person or hybrid
	Duration            *string          `json:"duration,omitempty" db:"duration"`              // Free-form duration, e.g. "3 months"
	Stipend             *string          `json:"stipend,omitempty" db:"stipend"`                //
	IsPaid              bool             `json:"isPaid" db:"is_paid"`                           //
	ApplicationDeadline *time.Time       `json:"applicationDeadline,omitempty" db:"application_deadline"`
	StartDate           *time.Time       `json:"startDate,omitempty" db:"start_date"`
	EndDate             *time.Time       `json:"endDate,omitempty" db:"end_date"`
	Status              JobStatus        `json:"status" db:"status" example:"active"` // active, closed or draft
	ModerationStatus    ModerationStatus `json:"moderationStatus" db:"moderation_status"`
	ModerationNotes     *string          `json:"moderationNotes,omitempty" db:"moderation_notes"`
	ModeratedBy         *int64           `json:"moderatedBy,omitempty" db:"moderated_by"`
	ModeratedAt         *time.Time       `json:"moderatedAt,omitempty" db:"moderated_at"`
	PostedAt            time.Time        `json:"postedAt" db:"posted_at"`
	CreatedAt           time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time        `json:"updatedAt" db:"updated_at"`
	Employer            *EmployerProfile `json:"employer,omitempty"` // Relation, no db tag
}
