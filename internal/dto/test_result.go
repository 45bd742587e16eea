package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// CreateTestResultRequest records one score. MaxScore and Status default on insert.
type CreateTestResultRequest struct {
	Name      string                  `json:"name" validate:"required"`
	StudentID int64                   `json:"studentId" validate:"required,gt=0"`
	ClassID   int64                   `json:"classId" validate:"required,gt=0"`
	Date      models.Date             `json:"date" validate:"required"`
	Score     float64                 `json:"score" validate:"gte=0"`
	MaxScore  float64                 `json:"maxScore" validate:"omitempty,gt=0"`
	Status    models.TestResultStatus `json:"status" validate:"omitempty,oneof=pending graded"`
}

// ClassScore is one student's entry in a class-wide submission.
type ClassScore struct {
	StudentID int64   `json:"studentId" validate:"required,gt=0"`
	Score     float64 `json:"score" validate:"gte=0"`
}

// CreateClassResultsRequest records one test for several students of a class.
type CreateClassResultsRequest struct {
	Name     string                  `json:"name" validate:"required"`
	ClassID  int64                   `json:"classId" validate:"required,gt=0"`
	Date     models.Date             `json:"date" validate:"required"`
	MaxScore float64                 `json:"maxScore" validate:"omitempty,gt=0"`
	Status   models.TestResultStatus `json:"status" validate:"omitempty,oneof=pending graded"`
	Scores   []ClassScore            `json:"scores" validate:"required,min=1,dive"`
}

// UpdateTestResultRequest sets score and status independently of each other.
type UpdateTestResultRequest struct {
	Score  float64                 `json:"score" validate:"gte=0"`
	Status models.TestResultStatus `json:"status" validate:"required,oneof=pending graded"`
}
