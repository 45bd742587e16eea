package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

type testResultRepository interface {
	CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error)
	GetTestResult(ctx context.Context, id int64) (*models.TestResult, error)
	ListTestResultsByClass(ctx context.Context, classID int64) ([]models.TestResult, error)
	ListTestResultsByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error)
	UpdateTestResult(ctx context.Context, id int64, score float64, status models.TestResultStatus) (*models.TestResult, error)
	studentLookup
}

// TestResultService manages test results.
type TestResultService struct {
	repo      testResultRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestResultService constructs the test result service.
func NewTestResultService(repo testResultRepository, validate *validator.Validate, logger *zap.Logger) *TestResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestResultService{repo: repo, validator: newValidator(validate), logger: logger}
}

// Create stores one result.
func (s *TestResultService) Create(ctx context.Context, req dto.CreateTestResultRequest) (*models.TestResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid test result payload")
	}
	if err := requireStudent(ctx, s.repo, req.StudentID); err != nil {
		return nil, err
	}
	return s.repo.CreateTestResult(ctx, models.TestResult{
		Name:      req.Name,
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      req.Date,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Status:    req.Status,
	})
}

// CreateForClass stores one result per listed student in order. Every student is checked before
// the first write. Rows are then written one by one: when a write fails the earlier rows stay
// stored, they are returned, and the error says how many were saved.
func (s *TestResultService) CreateForClass(ctx context.Context, req dto.CreateClassResultsRequest) ([]models.TestResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid class results payload")
	}
	for _, entry := range req.Scores {
		if err := requireStudent(ctx, s.repo, entry.StudentID); err != nil {
			return nil, err
		}
	}

	saved := make([]models.TestResult, 0, len(req.Scores))
	for _, entry := range req.Scores {
		result, err := s.repo.CreateTestResult(ctx, models.TestResult{
			Name:      req.Name,
			StudentID: entry.StudentID,
			ClassID:   req.ClassID,
			Date:      req.Date,
			Score:     entry.Score,
			MaxScore:  req.MaxScore,
			Status:    req.Status,
		})
		if err != nil {
			s.logger.Warn("class results partially saved",
				zap.Int64("class_id", req.ClassID),
				zap.Int("saved", len(saved)),
				zap.Int("total", len(req.Scores)),
				zap.Error(err),
			)
			partial := appErrors.Clone(appErrors.FromError(err), fmt.Sprintf("saved %d of %d results", len(saved), len(req.Scores)))
			return saved, partial
		}
		saved = append(saved, *result)
	}

	return saved, nil
}

// Get returns a result by ID.
func (s *TestResultService) Get(ctx context.Context, id int64) (*models.TestResult, error) {
	result, err := s.repo.GetTestResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, notFound("test result not found")
	}
	return result, nil
}

// ListByClass returns results of a class.
func (s *TestResultService) ListByClass(ctx context.Context, classID int64) ([]models.TestResult, error) {
	return s.repo.ListTestResultsByClass(ctx, classID)
}

// ListByStudent returns results of a student.
func (s *TestResultService) ListByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error) {
	return s.repo.ListTestResultsByStudent(ctx, studentID)
}

// Update changes score and status.
func (s *TestResultService) Update(ctx context.Context, id int64, req dto.UpdateTestResultRequest) (*models.TestResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid test result update")
	}
	result, err := s.repo.UpdateTestResult(ctx, id, req.Score, req.Status)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, notFound("test result not found")
	}
	return result, nil
}
