package live

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// DemoListings is the fixed dataset the listings view falls back to when
// its snapshot cannot be served, typically because no backend is
// configured. The entries look like real rows so the browse surface stays
// usable end to end.
func DemoListings() []*models.JobListing {
	now := time.Now()
	threeMonths := "3 months"
	sixMonths := "6 months"
	stipend := "1200 EUR/month"

	return []*models.JobListing{
		{
			ID:             1,
			EmployerID:     1,
			Title:          "Backend Engineering Intern",
			Description:    "Work on the services powering our marketplace: REST APIs, Postgres schemas and background jobs.",
			Requirements:   []string{"Enrolled CS student", "Comfortable with SQL"},
			SkillsRequired: []string{"go", "sql"},
			Location:       "Berlin",
			JobType:        models.JobTypeHybrid,
			Duration:       &sixMonths,
			Stipend:        &stipend,
			IsPaid:         true,
			Status:         models.JobStatusActive,
			ModerationStatus: models.ModerationApproved,
			PostedAt:         now.Add(-48 * time.Hour),
			CreatedAt:        now.Add(-48 * time.Hour),
			UpdatedAt:        now.Add(-48 * time.Hour),
			Employer: &models.EmployerProfile{
				ID:          1,
				UserID:      1,
				CompanyName: "Nimbus Labs",
				Industry:    strPtr("Software"),
			},
		},
		{
			ID:             2,
			EmployerID:     2,
			Title:          "Data Analysis Intern",
			Description:    "Support the analytics team with dashboards, ad-hoc queries and weekly reporting.",
			Requirements:   []string{"Statistics coursework"},
			SkillsRequired: []string{"python", "sql"},
			Location:       "Remote",
			JobType:        models.JobTypeRemote,
			Duration:       &threeMonths,
			IsPaid:         false,
			Status:         models.JobStatusActive,
			ModerationStatus: models.ModerationApproved,
			PostedAt:         now.Add(-72 * time.Hour),
			CreatedAt:        now.Add(-72 * time.Hour),
			UpdatedAt:        now.Add(-72 * time.Hour),
			Employer: &models.EmployerProfile{
				ID:          2,
				UserID:      2,
				CompanyName: "Helio Analytics",
				Industry:    strPtr("Data"),
			},
		},
		{
			ID:             3,
			EmployerID:     3,
			Title:          "Marketing Intern",
			Description:    "Plan social campaigns and track their performance together with the growth team.",
			Requirements:   []string{"Strong writing skills"},
			SkillsRequired: []string{"content", "social-media"},
			Location:       "Hamburg",
			JobType:        models.JobTypeInPerson,
			Duration:       &threeMonths,
			IsPaid:         true,
			Status:         models.JobStatusActive,
			ModerationStatus: models.ModerationApproved,
			PostedAt:         now.Add(-96 * time.Hour),
			CreatedAt:        now.Add(-96 * time.Hour),
			UpdatedAt:        now.Add(-96 * time.Hour),
			Employer: &models.EmployerProfile{
				ID:          3,
				UserID:      3,
				CompanyName: "Brandwerk",
				Industry:    strPtr("Marketing"),
			},
		},
	}
}

func strPtr(s string) *string {
	return &s
}
