package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// CreateJobRequest represents a new job listing
type CreateJobRequest struct {
	Title               string         `json:"title" binding:"required"`
	Description         string         `json:"description" binding:"required"`
	Requirements        []string       `json:"requirements,omitempty"`
	SkillsRequired      []string       `json:"skillsRequired,omitempty"`
	Location            string         `json:"location" binding:"required"`
	JobType             models.JobType `json:"jobType" binding:"required"`
	Duration            *string        `json:"duration,omitempty"`
	Stipend             *string        `json:"stipend,omitempty"`
	IsPaid              bool           `json:"isPaid"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time     `json:"startDate,omitempty"`
	EndDate             *time.Time     `json:"endDate,omitempty"`
	Status              *models.JobStatus `json:"status,omitempty"` // defaults to active
}

// UpdateJobRequest represents job listing update data.
// Nil fields are left untouched.
type UpdateJobRequest struct {
	Title               *string           `json:"title,omitempty"`
	Description         *string           `json:"description,omitempty"`
	Requirements        []string          `json:"requirements,omitempty"`
	SkillsRequired      []string          `json:"skillsRequired,omitempty"`
	Location            *string           `json:"location,omitempty"`
	JobType             *models.JobType   `json:"jobType,omitempty"`
	Duration            *string           `json:"duration,omitempty"`
	Stipend             *string           `json:"stipend,omitempty"`
	IsPaid              *bool             `json:"isPaid,omitempty"`
	ApplicationDeadline *time.Time        `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time        `json:"startDate,omitempty"`
	EndDate             *time.Time        `json:"endDate,omitempty"`
	Status              *models.JobStatus `json:"status,omitempty"`
}

// JobFilterRequest represents job listing browse filters. Lifecycle and
// moderation state are not client-selectable on the browse surface.
type JobFilterRequest struct {
	Search     string `form:"search"`
	Location   string `form:"location"`
	JobType    string `form:"jobType"`
	Skill      string `form:"skill"`
	IsPaid     *bool  `form:"isPaid"`
	EmployerID int64  `form:"employerId"`
}

// JobResponse represents job listing information
type JobResponse struct {
	ID                  int64                    `json:"id"`
	EmployerID          int64                    `json:"employerId"`
	Title               string                   `json:"title"`
	Description         string                   `json:"description"`
	Requirements        []string                 `json:"requirements"`
	SkillsRequired      []string                 `json:"skillsRequired"`
	Location            string                   `json:"location"`
	JobType             string                   `json:"jobType" enums:"remote,in-person,hybrid"`
	Duration            *string                  `json:"duration,omitempty"`
	Stipend             *string                  `json:"stipend,omitempty"`
	IsPaid              bool                     `json:"isPaid"`
	ApplicationDeadline *time.Time               `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time               `json:"startDate,omitempty"`
	EndDate             *time.Time               `json:"endDate,omitempty"`
	Status              string                   `json:"status" enums:"active,closed,draft"`
	ModerationStatus    string                   `json:"moderationStatus" enums:"pending,approved,rejected,flagged"`
	PostedAt            time.Time                `json:"postedAt"`
	Employer            *EmployerProfileResponse `json:"employer,omitempty"`
}

// FromJobListing converts a models.JobListing to a JobResponse
func FromJobListing(job *models.JobListing) JobResponse {
	resp := JobResponse{
		ID:                  job.ID,
		EmployerID:          job.EmployerID,
		Title:               job.Title,
		Description:         job.Description,
		Requirements:        job.Requirements,
		SkillsRequired:      job.SkillsRequired,
		Location:            job.Location,
		JobType:             string(job.JobType),
		Duration:            job.Duration,
		Stipend:             job.Stipend,
		IsPaid:              job.IsPaid,
		ApplicationDeadline: job.ApplicationDeadline,
		StartDate:           job.StartDate,
		EndDate:             job.EndDate,
		Status:              string(job.Status),
		ModerationStatus:    string(job.ModerationStatus),
		PostedAt:            job.PostedAt,
	}
	if resp.Requirements == nil {
		resp.Requirements = []string{}
	}
	if resp.SkillsRequired == nil {
		resp.SkillsRequired = []string{}
	}
	if job.Employer != nil {
		employer := FromEmployerProfile(job.Employer)
		resp.Employer = &employer
	}
	return resp
}

// FromJobListings converts a slice of job listings
func FromJobListings(jobs []*models.JobListing) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, FromJobListing(job))
	}
	return responses
}
