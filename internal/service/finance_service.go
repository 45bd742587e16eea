package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

type financeRepository interface {
	CreateInstallment(ctx context.Context, installment models.Installment) (*models.Installment, error)
	GetInstallment(ctx context.Context, id int64) (*models.Installment, error)
	ListInstallments(ctx context.Context) ([]models.Installment, error)
	ListInstallmentsByStudent(ctx context.Context, studentID int64) ([]models.Installment, error)
	ListInstallmentsByStatus(ctx context.Context, status models.InstallmentStatus) ([]models.Installment, error)
	UpdateInstallment(ctx context.Context, id int64, status models.InstallmentStatus, paymentDate *models.Date) (*models.Installment, error)

	CreateTeacherPayment(ctx context.Context, payment models.TeacherPayment) (*models.TeacherPayment, error)
	GetTeacherPayment(ctx context.Context, id int64) (*models.TeacherPayment, error)
	ListTeacherPayments(ctx context.Context) ([]models.TeacherPayment, error)
	ListTeacherPaymentsByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherPayment, error)
	UpdateTeacherPayment(ctx context.Context, id int64, status models.TeacherPaymentStatus, paymentDate *models.Date) (*models.TeacherPayment, error)

	studentLookup
}

// FinanceService manages installments and teacher payments.
type FinanceService struct {
	repo      financeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFinanceService constructs the finance service.
func NewFinanceService(repo financeRepository, validate *validator.Validate, logger *zap.Logger) *FinanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceService{repo: repo, validator: newValidator(validate), logger: logger}
}

// CreateInstallment schedules a payment. Status defaults to pending.
func (s *FinanceService) CreateInstallment(ctx context.Context, req dto.CreateInstallmentRequest) (*models.Installment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid installment payload")
	}
	if err := requireStudent(ctx, s.repo, req.StudentID); err != nil {
		return nil, err
	}
	return s.repo.CreateInstallment(ctx, models.Installment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    req.Status,
	})
}

// GetInstallment returns an installment by ID.
func (s *FinanceService) GetInstallment(ctx context.Context, id int64) (*models.Installment, error) {
	installment, err := s.repo.GetInstallment(ctx, id)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, notFound("installment not found")
	}
	return installment, nil
}

// ListInstallments returns installments matching filter.
func (s *FinanceService) ListInstallments(ctx context.Context, filter dto.InstallmentFilter) ([]models.Installment, error) {
	if filter.StudentID > 0 {
		return s.repo.ListInstallmentsByStudent(ctx, filter.StudentID)
	}
	if filter.Status != "" {
		status := models.InstallmentStatus(strings.ToLower(filter.Status))
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown installment status "+filter.Status)
		}
		return s.repo.ListInstallmentsByStatus(ctx, status)
	}
	return s.repo.ListInstallments(ctx)
}

// UpdateInstallment changes the status. Marking paid without a date is accepted and leaves the
// stored payment date as it was.
func (s *FinanceService) UpdateInstallment(ctx context.Context, id int64, req dto.UpdateInstallmentRequest) (*models.Installment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid installment update")
	}
	installment, err := s.repo.UpdateInstallment(ctx, id, req.Status, req.PaymentDate)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, notFound("installment not found")
	}
	return installment, nil
}

// CreateTeacherPayment records a monthly payment. Status defaults to pending.
func (s *FinanceService) CreateTeacherPayment(ctx context.Context, req dto.CreateTeacherPaymentRequest) (*models.TeacherPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid teacher payment payload")
	}
	return s.repo.CreateTeacherPayment(ctx, models.TeacherPayment{
		TeacherID:   req.TeacherID,
		Amount:      req.Amount,
		Month:       req.Month,
		Description: req.Description,
		Status:      req.Status,
	})
}

// GetTeacherPayment returns a teacher payment by ID.
func (s *FinanceService) GetTeacherPayment(ctx context.Context, id int64) (*models.TeacherPayment, error) {
	payment, err := s.repo.GetTeacherPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, notFound("teacher payment not found")
	}
	return payment, nil
}

// ListTeacherPayments returns every payment, or those of teacherID when it is set.
func (s *FinanceService) ListTeacherPayments(ctx context.Context, teacherID int64) ([]models.TeacherPayment, error) {
	if teacherID > 0 {
		return s.repo.ListTeacherPaymentsByTeacher(ctx, teacherID)
	}
	return s.repo.ListTeacherPayments(ctx)
}

// UpdateTeacherPayment changes the status of a teacher payment.
func (s *FinanceService) UpdateTeacherPayment(ctx context.Context, id int64, req dto.UpdateTeacherPaymentRequest) (*models.TeacherPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid teacher payment update")
	}
	payment, err := s.repo.UpdateTeacherPayment(ctx, id, req.Status, req.PaymentDate)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, notFound("teacher payment not found")
	}
	return payment, nil
}
