package models

import "time"

// UserRole represents the available roles for the back office.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// User is a login account. Grade is only meaningful for students.
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     UserRole  `json:"role"`
	Grade    *string   `json:"grade"`
	JoinDate time.Time `json:"joinDate"`
}
