package postgres

import (
	"context"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

// statusPartial leaves payment_date out of the SET clause when no date is given.
func statusPartial(status string, paymentDate *models.Date) map[string]interface{} {
	partial := map[string]interface{}{"status": status}
	if paymentDate != nil {
		partial["paymentDate"] = paymentDate
	}
	return partial
}

// Installments

func (s *Store) CreateInstallment(ctx context.Context, installment models.Installment) (*models.Installment, error) {
	var row mapper.InstallmentRow
	if err := s.insert(ctx, "create_installment", tableInstallments, mapper.InstallmentFields, mapper.InstallmentToRow(repository.InstallmentDefaults(installment)), &row); err != nil {
		return nil, err
	}
	created := mapper.InstallmentFromRow(row)
	return &created, nil
}

func (s *Store) GetInstallment(ctx context.Context, id int64) (*models.Installment, error) {
	var row mapper.InstallmentRow
	ok, err := s.getOne(ctx, "get_installment", &row, selectQuery(tableInstallments, mapper.InstallmentFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.InstallmentFromRow), nil
}

func (s *Store) ListInstallments(ctx context.Context) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments", "")
}

func (s *Store) ListInstallmentsByStudent(ctx context.Context, studentID int64) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments_by_student", "student_id = $1", studentID)
}

func (s *Store) ListInstallmentsByStatus(ctx context.Context, status models.InstallmentStatus) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments_by_status", "status = $1", string(status))
}

func (s *Store) listInstallments(ctx context.Context, op, where string, args ...interface{}) ([]models.Installment, error) {
	var rows []mapper.InstallmentRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableInstallments, mapper.InstallmentFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.InstallmentFromRow), nil
}

func (s *Store) UpdateInstallment(ctx context.Context, id int64, status models.InstallmentStatus, paymentDate *models.Date) (*models.Installment, error) {
	var row mapper.InstallmentRow
	ok, err := s.update(ctx, "update_installment", tableInstallments, mapper.InstallmentFields, id, statusPartial(string(status), paymentDate), &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.InstallmentFromRow), nil
}

// Teacher payments

func (s *Store) CreateTeacherPayment(ctx context.Context, payment models.TeacherPayment) (*models.TeacherPayment, error) {
	var row mapper.TeacherPaymentRow
	if err := s.insert(ctx, "create_teacher_payment", tableTeacherPayments, mapper.TeacherPaymentFields, mapper.TeacherPaymentToRow(repository.TeacherPaymentDefaults(payment)), &row); err != nil {
		return nil, err
	}
	created := mapper.TeacherPaymentFromRow(row)
	return &created, nil
}

func (s *Store) GetTeacherPayment(ctx context.Context, id int64) (*models.TeacherPayment, error) {
	var row mapper.TeacherPaymentRow
	ok, err := s.getOne(ctx, "get_teacher_payment", &row, selectQuery(tableTeacherPayments, mapper.TeacherPaymentFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.TeacherPaymentFromRow), nil
}

func (s *Store) ListTeacherPayments(ctx context.Context) ([]models.TeacherPayment, error) {
	return s.listTeacherPayments(ctx, "list_teacher_payments", "")
}

func (s *Store) ListTeacherPaymentsByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherPayment, error) {
	return s.listTeacherPayments(ctx, "list_teacher_payments_by_teacher", "teacher_id = $1", teacherID)
}

func (s *Store) listTeacherPayments(ctx context.Context, op, where string, args ...interface{}) ([]models.TeacherPayment, error) {
	var rows []mapper.TeacherPaymentRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableTeacherPayments, mapper.TeacherPaymentFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.TeacherPaymentFromRow), nil
}

func (s *Store) UpdateTeacherPayment(ctx context.Context, id int64, status models.TeacherPaymentStatus, paymentDate *models.Date) (*models.TeacherPayment, error) {
	var row mapper.TeacherPaymentRow
	ok, err := s.update(ctx, "update_teacher_payment", tableTeacherPayments, mapper.TeacherPaymentFields, id, statusPartial(string(status), paymentDate), &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.TeacherPaymentFromRow), nil
}
