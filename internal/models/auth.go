package models

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// DebugUserID identifies the development identity. No stored user ever has id 0.
const DebugUserID int64 = 0

// DebugUser returns the identity served when no session is present and the debug identity is
// enabled.
func DebugUser() *User {
	return &User{
		ID:       DebugUserID,
		Username: "debug",
		FullName: "Debug Administrator",
		Role:     RoleAdmin,
	}
}
