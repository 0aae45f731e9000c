package models

import (
	"time"
)

// Education is one entry of an intern's education history, stored as JSONB
type Education struct {
	Institution string   `json:"institution" example:"State University"`
	Degree      string   `json:"degree" example:"BSc"`
	Field       string   `json:"field" example:"Computer Science"`
	StartDate   string   `json:"startDate" example:"2022-09-01"`
	EndDate     *string  `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	GPA         *float64 `json:"gpa,omitempty"`
}

// Experience is one entry of an intern's work history, stored as JSONB
type Experience struct {
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Description string  `json:"description,omitempty"`
}

// InternProfile defines the intern extension based on the 'intern_profiles' table
type InternProfile struct {
	ID                int64        `json:"id" db:"id"`
	UserID            int64        `json:"userId" db:"user_id"`
	ResumeURL         *string      `json:"resumeUrl,omitempty" db:"resume_url"`
	Skills            []string     `json:"skills" db:"skills"`
	Education         []Education  `json:"education" db:"education"`
	Experience        []Experience `json:"experience" db:"experience"`
	Bio               *string      `json:"bio,omitempty" db:"bio"`
	Location          *string      `json:"location,omitempty" db:"location"`
	Phone             *string      `json:"phone,omitempty" db:"phone"`
	LinkedinURL       *string      `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	GithubURL         *string      `json:"githubUrl,omitempty" db:"github_url"`
	PortfolioURL      *string      `json:"portfolioUrl,omitempty" db:"portfolio_url"`
	GPA               *float64     `json:"gpa,omitempty" db:"gpa"`
	GraduationDate    *string      `json:"graduationDate,omitempty" db:"graduation_date"`
	AvailabilityStart *string      `json:"availabilityStart,omitempty" db:"availability_start"`
	AvailabilityEnd   *string      `json:"availabilityEnd,omitempty" db:"availability_end"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`
	User              *User        `json:"user,omitempty"` // Relation, no db tag
}

// EmployerProfile defines the employer extension based on the 'employer_profiles' table
type EmployerProfile struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"userId" db:"user_id"`
	CompanyName        string    `json:"companyName" db:"company_name" example:"Acme Robotics"`
	CompanyDescription *string   `json:"companyDescription,omitempty" db:"company_description"`
	Industry           *string   `json:"industry,omitempty" db:"industry"`
	Location           *string   `json:"location,omitempty" db:"location"`
	Website            *string   `json:"website,omitempty" db:"website"`
	CompanySize        *string   `json:"companySize,omitempty" db:"company_size"`
	LogoURL            *string   `json:"logoUrl,omitempty" db:"logo_url"`
	ContactName        *string   `json:"contactName,omitempty" db:"contact_name"`
	ContactPhone       *string   `json:"contactPhone,omitempty" db:"contact_phone"`
	FoundedYear        *int      `json:"foundedYear,omitempty" db:"founded_year"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
	User               *User     `json:"user,omitempty"` // Relation, no db tag
}
