package models

// Roles assignable to a user. New accounts default to RoleUser; RoleAdmin is
// granted out of band (seed data or manual promotion).
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
