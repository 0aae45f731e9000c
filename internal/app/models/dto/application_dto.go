package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// ApplyRequest represents a new application to a job listing
type ApplyRequest struct {
	JobID       int64   `json:"jobId" binding:"required,min=1"`
	CoverLetter *string `json:"coverLetter,omitempty"`
	ResumeURL   *string `json:"resumeUrl,omitempty"`
}

// UpdateApplicationStatusRequest represents an application status transition
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
	Notes  *string                  `json:"notes,omitempty"`
}

// ApplicationResponse represents application information with its
// relational context (application -> job -> employer)
type ApplicationResponse struct {
	ID          int64         `json:"id"`
	InternID    int64         `json:"internId"`
	JobID       int64         `json:"jobId"`
	Status      string        `json:"status" enums:"applied,reviewing,interviewing,accepted,rejected,withdrawn"`
	CoverLetter *string       `json:"coverLetter,omitempty"`
	ResumeURL   *string       `json:"resumeUrl,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	AppliedAt   time.Time     `json:"appliedAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Job         *JobResponse  `json:"job,omitempty"`
	Intern      *UserResponse `json:"intern,omitempty"`
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(app *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		InternID:    app.InternID,
		JobID:       app.JobID,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
		Notes:       app.Notes,
		AppliedAt:   app.AppliedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Job != nil {
		job := FromJobListing(app.Job)
		resp.Job = &job
	}
	if app.Intern != nil {
		intern := FromUser(app.Intern)
		resp.Intern = &intern
	}
	return resp
}

// FromApplications converts a slice of applications
func FromApplications(apps []*models.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, FromApplication(app))
	}
	return responses
}
