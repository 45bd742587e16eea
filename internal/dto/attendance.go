package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// MarkAttendanceRequest records one student's presence. The caller chooses the initial status.
type MarkAttendanceRequest struct {
	StudentID int64                   `json:"studentId" validate:"required,gt=0"`
	ClassID   int64                   `json:"classId" validate:"required,gt=0"`
	Date      models.Date             `json:"date" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
}

// UpdateAttendanceRequest changes the status of an existing record.
type UpdateAttendanceRequest struct {
	Status models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
}
