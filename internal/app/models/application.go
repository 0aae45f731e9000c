package models

import (
	"time"
)

// ApplicationStatus is the lifecycle state of an application
type ApplicationStatus string

const (
	ApplicationApplied      ApplicationStatus = "applied"
	ApplicationReviewing    ApplicationStatus = "reviewing"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationAccepted     ApplicationStatus = "accepted"
	ApplicationRejected     ApplicationStatus = "rejected"
	ApplicationWithdrawn    ApplicationStatus = "withdrawn"
)

// ValidApplicationStatus reports whether s is one of the enumerated states
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationApplied, ApplicationReviewing, ApplicationInterviewing,
		ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application defines the application model based on the 'applications' table
type Application struct {
	ID          int64             `json:"id" db:"id" example:"7"`
	InternID    int64             `json:"internId" db:"intern_id"`            // Applying intern (users.id)
	JobID       int64             `json:"jobId" db:"job_id"`                  // Target job listing
	Status      ApplicationStatus `json:"status" db:"status" example:"applied"`
	CoverLetter *string           `json:"coverLetter,omitempty" db:"cover_letter"`
	ResumeURL   *string           `json:"resumeUrl,omitempty" db:"resume_url"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
	Job         *JobListing       `json:"job,omitempty"`    // Relation, no db tag
	Intern      *User             `json:"intern,omitempty"` // Relation, no db tag
}
