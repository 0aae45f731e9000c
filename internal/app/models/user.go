package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id" example:"1"`                                           // Unique identifier for the user
	Email          string     `json:"email" db:"email" example:"intern@example.com"`                    // User's email address
	Password       string     `json:"-" db:"password"`                                                  // User's hashed password (excluded from JSON)
	Name           string     `json:"name" db:"name" example:"Jordan Lee"`                              // Display name
	UserType       RoleType   `json:"userType" db:"user_type" example:"INTERN"`                         // User's role (INTERN, EMPLOYER or ADMIN)
	Status         UserStatus `json:"status" db:"status" example:"active"`                              // Account standing (active or banned)
	ProfilePicture *string    `json:"profilePicture,omitempty" db:"profile_picture"`                    // URL of the profile picture (nullable)
	BannedAt       *time.Time `json:"bannedAt,omitempty" db:"banned_at"`                                // When the user was banned (nullable)
	BannedBy       *int64     `json:"bannedBy,omitempty" db:"banned_by"`                                // Admin who banned the user (nullable)
	BanReason      *string    `json:"banReason,omitempty" db:"ban_reason"`                              // Reason recorded at ban time (nullable)
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                         // Timestamp of the last login (nullable)
	CreatedAt      time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`         // Timestamp when the user was created
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`         // Timestamp when the user was last updated
	InternProfile   *InternProfile   `json:"internProfile,omitempty"`   // Relation, no db tag
	EmployerProfile *EmployerProfile `json:"employerProfile,omitempty"` // Relation, no db tag
}

// AdminUser defines the admin extension based on the 'admin_users' table
type AdminUser struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	AdminLevel  string    `json:"adminLevel" db:"admin_level" example:"moderator"`
	Permissions []string  `json:"permissions" db:"permissions"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	User        *User     `json:"user,omitempty"` // Relation, no db tag
}
