package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// CreateEventRequest payload for a calendar entry.
type CreateEventRequest struct {
	Title        string      `json:"title" validate:"required"`
	Description  *string     `json:"description"`
	Date         models.Date `json:"date" validate:"required"`
	Time         *string     `json:"time" validate:"omitempty,clock"`
	TargetGrades *string     `json:"targetGrades"`
}
