package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
)

func TestListingFilterPinsActiveApproved(t *testing.T) {
	filter := toListingFilter(&dto.JobFilterRequest{})

	require.NotNil(t, filter.Status)
	assert.Equal(t, models.JobStatusActive, *filter.Status)
	require.NotNil(t, filter.ModerationStatus)
	assert.Equal(t, models.ModerationApproved, *filter.ModerationStatus)
}

func TestListingFilterCarriesQueryFields(t *testing.T) {
	paid := true
	filter := toListingFilter(&dto.JobFilterRequest{
		Search:     "backend",
		Location:   "Berlin",
		JobType:    "remote",
		Skill:      "go",
		IsPaid:     &paid,
		EmployerID: 3,
	})

	require.NotNil(t, filter.Search)
	assert.Equal(t, "backend", *filter.Search)
	require.NotNil(t, filter.Location)
	assert.Equal(t, "Berlin", *filter.Location)
	require.NotNil(t, filter.JobType)
	assert.Equal(t, models.JobTypeRemote, *filter.JobType)
	require.NotNil(t, filter.Skill)
	assert.Equal(t, "go", *filter.Skill)
	require.NotNil(t, filter.IsPaid)
	assert.True(t, *filter.IsPaid)
	require.NotNil(t, filter.EmployerID)
	assert.Equal(t, int64(3), *filter.EmployerID)

	// Pinned regardless of what the query string carried
	require.NotNil(t, filter.Status)
	assert.Equal(t, models.JobStatusActive, *filter.Status)
	require.NotNil(t, filter.ModerationStatus)
	assert.Equal(t, models.ModerationApproved, *filter.ModerationStatus)
}
