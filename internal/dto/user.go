package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// StudentProfileRequest carries the optional profile stored for student accounts.
type StudentProfileRequest struct {
	ParentName  *string      `json:"parentName"`
	Phone       *string      `json:"phone"`
	Address     *string      `json:"address"`
	DateOfBirth *models.Date `json:"dateOfBirth"`
}

// CreateUserRequest represents payload for creating users.
type CreateUserRequest struct {
	Username string                 `json:"username" validate:"required,min=2,max=64"`
	Password string                 `json:"password" validate:"required,min=6"`
	FullName string                 `json:"fullName" validate:"required"`
	Email    string                 `json:"email" validate:"required,email"`
	Role     models.UserRole        `json:"role" validate:"required,oneof=admin teacher student"`
	Grade    *string                `json:"grade" validate:"omitempty,min=1"`
	Profile  *StudentProfileRequest `json:"profile"`
}
