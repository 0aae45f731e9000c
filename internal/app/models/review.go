package models

import (
	"time"
)

// ReviewType is the direction of a review
type ReviewType string

const (
	ReviewInternToEmployer ReviewType = "intern_to_employer"
	ReviewEmployerToIntern ReviewType = "employer_to_intern"
)

// Review defines the review model based on the 'reviews' table.
// Reviews are immutable once created.
type Review struct {
	ID            int64      `json:"id" db:"id"`
	ReviewerID    int64      `json:"reviewerId" db:"reviewer_id"`
	RevieweeID    int64      `json:"revieweeId" db:"reviewee_id"`
	ApplicationID int64      `json:"applicationId" db:"application_id"`
	Rating        int        `json:"rating" db:"rating" example:"4"` // 1..5
	Comment       *string    `json:"comment,omitempty" db:"comment"`
	ReviewType    ReviewType `json:"reviewType" db:"review_type" example:"intern_to_employer"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	Reviewer      *User      `json:"reviewer,omitempty"` // Relation, no db tag
	Reviewee      *User      `json:"reviewee,omitempty"` // Relation, no db tag
}
