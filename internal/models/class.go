package models

// Class is a taught group owned by a teacher account.
type Class struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Grade     string  `json:"grade"`
	TeacherID int64   `json:"teacherId"`
	Schedule  *string `json:"schedule"`
}
