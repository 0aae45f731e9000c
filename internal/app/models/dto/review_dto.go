package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// CreateReviewRequest represents a new review
type CreateReviewRequest struct {
	RevieweeID    int64             `json:"revieweeId" binding:"required,min=1"`
	ApplicationID int64             `json:"applicationId" binding:"required,min=1"`
	Rating        int               `json:"rating" binding:"required,min=1,max=5"`
	Comment       *string           `json:"comment,omitempty"`
	ReviewType    models.ReviewType `json:"reviewType" binding:"required"`
}

// ReviewResponse represents review information
type ReviewResponse struct {
	ID            int64         `json:"id"`
	ReviewerID    int64         `json:"reviewerId"`
	RevieweeID    int64         `json:"revieweeId"`
	ApplicationID int64         `json:"applicationId"`
	Rating        int           `json:"rating"`
	Comment       *string       `json:"comment,omitempty"`
	ReviewType    string        `json:"reviewType" enums:"intern_to_employer,employer_to_intern"`
	CreatedAt     time.Time     `json:"createdAt"`
	Reviewer      *UserResponse `json:"reviewer,omitempty"`
	Reviewee      *UserResponse `json:"reviewee,omitempty"`
}

// FromReview converts a models.Review to a ReviewResponse
func FromReview(review *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:            review.ID,
		ReviewerID:    review.ReviewerID,
		RevieweeID:    review.RevieweeID,
		ApplicationID: review.ApplicationID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		ReviewType:    string(review.ReviewType),
		CreatedAt:     review.CreatedAt,
	}
	if review.Reviewer != nil {
		reviewer := FromUser(review.Reviewer)
		resp.Reviewer = &reviewer
	}
	if review.Reviewee != nil {
		reviewee := FromUser(review.Reviewee)
		resp.Reviewee = &reviewee
	}
	return resp
}

// FromReviews converts a slice of reviews
func FromReviews(reviews []*models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, FromReview(review))
	}
	return responses
}
