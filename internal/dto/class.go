package dto

// CreateClassRequest payload for creating a class.
type CreateClassRequest struct {
	Name      string  `json:"name" validate:"required"`
	Grade     string  `json:"grade" validate:"required"`
	TeacherID int64   `json:"teacherId" validate:"required,gt=0"`
	Schedule  *string `json:"schedule"`
}

// ClassFilter narrows class listings. At most one dimension is applied, teacher first.
type ClassFilter struct {
	TeacherID int64
	Grade     string
}
