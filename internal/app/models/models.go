package models

// RoleType defines the user role type
type RoleType string

const (
	RoleIntern   RoleType = "INTERN"
	RoleEmployer RoleType = "EMPLOYER"
	RoleAdmin    RoleType = "ADMIN"
)

// UserStatus defines the account standing of a user
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)
