package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
)

type attendanceRepository interface {
	CreateAttendance(ctx context.Context, attendance models.Attendance) (*models.Attendance, error)
	GetAttendance(ctx context.Context, id int64) (*models.Attendance, error)
	ListAttendanceByClass(ctx context.Context, classID int64) ([]models.Attendance, error)
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error)
	studentLookup
}

// AttendanceService coordinates attendance workflows.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: newValidator(validate), logger: logger}
}

// Mark stores a new attendance record. Repeated marks for the same day are kept as separate rows.
func (s *AttendanceService) Mark(ctx context.Context, req dto.MarkAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid attendance payload")
	}
	if err := requireStudent(ctx, s.repo, req.StudentID); err != nil {
		return nil, err
	}
	return s.repo.CreateAttendance(ctx, models.Attendance{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      req.Date,
		Status:    req.Status,
	})
}

// Get returns an attendance record by ID.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.Attendance, error) {
	record, err := s.repo.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFound("attendance not found")
	}
	return record, nil
}

// ListByClass returns attendance of a class.
func (s *AttendanceService) ListByClass(ctx context.Context, classID int64) ([]models.Attendance, error) {
	return s.repo.ListAttendanceByClass(ctx, classID)
}

// ListByStudent returns attendance of a student.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	return s.repo.ListAttendanceByStudent(ctx, studentID)
}

// UpdateStatus moves a record to any status, including the one it already has.
func (s *AttendanceService) UpdateStatus(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid attendance status")
	}
	record, err := s.repo.UpdateAttendance(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFound("attendance not found")
	}
	return record, nil
}
