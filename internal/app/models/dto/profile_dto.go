package dto

import (
	"github.com/internlink/internlink/internal/app/models"
)

// UpdateInternProfileRequest represents intern profile update data.
// Nil fields are left untouched.
type UpdateInternProfileRequest struct {
	Bio               *string             `json:"bio,omitempty"`
	Location          *string             `json:"location,omitempty"`
	Phone             *string             `json:"phone,omitempty"`
	Skills            []string            `json:"skills,omitempty"`
	Education         []models.Education  `json:"education,omitempty"`
	Experience        []models.Experience `json:"experience,omitempty"`
	LinkedinURL       *string             `json:"linkedinUrl,omitempty"`
	GithubURL         *string             `json:"githubUrl,omitempty"`
	PortfolioURL      *string             `json:"portfolioUrl,omitempty"`
	GPA               *float64            `json:"gpa,omitempty"`
	GraduationDate    *string             `json:"graduationDate,omitempty"`
	AvailabilityStart *string             `json:"availabilityStart,omitempty"`
	AvailabilityEnd   *string             `json:"availabilityEnd,omitempty"`
}

// UpdateEmployerProfileRequest represents employer profile update data.
// Nil fields are left untouched.
type UpdateEmployerProfileRequest struct {
	CompanyName        *string `json:"companyName,omitempty"`
	CompanyDescription *string `json:"companyDescription,omitempty"`
	Industry           *string `json:"industry,omitempty"`
	Location           *string `json:"location,omitempty"`
	Website            *string `json:"website,omitempty"`
	CompanySize        *string `json:"companySize,omitempty"`
	ContactName        *string `json:"contactName,omitempty"`
	ContactPhone       *string `json:"contactPhone,omitempty"`
	FoundedYear        *int    `json:"foundedYear,omitempty"`
}

// InternProfileResponse represents intern profile information
type InternProfileResponse struct {
	ID                int64               `json:"id"`
	UserID            int64               `json:"userId"`
	Bio               *string             `json:"bio,omitempty"`
	Location          *string             `json:"location,omitempty"`
	Phone             *string             `json:"phone,omitempty"`
	ResumeURL         *string             `json:"resumeUrl,omitempty"`
	Skills            []string            `json:"skills"`
	Education         []models.Education  `json:"education"`
	Experience        []models.Experience `json:"experience"`
	LinkedinURL       *string             `json:"linkedinUrl,omitempty"`
	GithubURL         *string             `json:"githubUrl,omitempty"`
	PortfolioURL      *string             `json:"portfolioUrl,omitempty"`
	GPA               *float64            `json:"gpa,omitempty"`
	GraduationDate    *string             `json:"graduationDate,omitempty"`
	AvailabilityStart *string             `json:"availabilityStart,omitempty"`
	AvailabilityEnd   *string             `json:"availabilityEnd,omitempty"`
	User              *UserResponse       `json:"user,omitempty"`
}

// EmployerProfileResponse represents employer profile information
type EmployerProfileResponse struct {
	ID                 int64         `json:"id"`
	UserID             int64         `json:"userId"`
	CompanyName        string        `json:"companyName"`
	CompanyDescription *string       `json:"companyDescription,omitempty"`
	Industry           *string       `json:"industry,omitempty"`
	Location           *string       `json:"location,omitempty"`
	Website            *string       `json:"website,omitempty"`
	CompanySize        *string       `json:"companySize,omitempty"`
	LogoURL            *string       `json:"logoUrl,omitempty"`
	ContactName        *string       `json:"contactName,omitempty"`
	ContactPhone       *string       `json:"contactPhone,omitempty"`
	FoundedYear        *int          `json:"foundedYear,omitempty"`
	User               *UserResponse `json:"user,omitempty"`
}

// FromInternProfile converts a models.InternProfile to an InternProfileResponse
func FromInternProfile(p *models.InternProfile) InternProfileResponse {
	resp := InternProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Bio:               p.Bio,
		Location:          p.Location,
		Phone:             p.Phone,
		ResumeURL:         p.ResumeURL,
		Skills:            p.Skills,
		Education:         p.Education,
		Experience:        p.Experience,
		LinkedinURL:       p.LinkedinURL,
		GithubURL:         p.GithubURL,
		PortfolioURL:      p.PortfolioURL,
		GPA:               p.GPA,
		GraduationDate:    p.GraduationDate,
		AvailabilityStart: p.AvailabilityStart,
		AvailabilityEnd:   p.AvailabilityEnd,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Education == nil {
		resp.Education = []models.Education{}
	}
	if resp.Experience == nil {
		resp.Experience = []models.Experience{}
	}
	if p.User != nil {
		user := FromUser(p.User)
		resp.User = &user
	}
	return resp
}

// FromEmployerProfile converts a models.EmployerProfile to an EmployerProfileResponse
func FromEmployerProfile(p *models.EmployerProfile) EmployerProfileResponse {
	resp := EmployerProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		CompanyName:        p.CompanyName,
		CompanyDescription: p.CompanyDescription,
		Industry:           p.Industry,
		Location:           p.Location,
		Website:            p.Website,
		CompanySize:        p.CompanySize,
		LogoURL:            p.LogoURL,
		ContactName:        p.ContactName,
		ContactPhone:       p.ContactPhone,
		FoundedYear:        p.FoundedYear,
	}
	if p.User != nil {
		user := FromUser(p.User)
		resp.User = &user
	}
	return resp
}
