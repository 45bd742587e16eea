package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

func statusPartial(status string, paymentDate *models.Date) map[string]interface{} {
	partial := map[string]interface{}{"status": status}
	if paymentDate != nil {
		partial["paymentDate"] = paymentDate
	}
	return partial
}

// Installments

func (s *Store) CreateInstallment(ctx context.Context, installment models.Installment) (*models.Installment, error) {
	row := mapper.InstallmentToRow(repository.InstallmentDefaults(installment))
	if err := s.insert(ctx, "create_installment", collInstallments, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.InstallmentFromRow(row)
	return &created, nil
}

func (s *Store) GetInstallment(ctx context.Context, id int64) (*models.Installment, error) {
	row, err := findOne[mapper.InstallmentRow](ctx, s, "get_installment", collInstallments, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.InstallmentFromRow), nil
}

func (s *Store) ListInstallments(ctx context.Context) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments", nil)
}

func (s *Store) ListInstallmentsByStudent(ctx context.Context, studentID int64) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments_by_student", bson.M{"student_id": studentID})
}

func (s *Store) ListInstallmentsByStatus(ctx context.Context, status models.InstallmentStatus) ([]models.Installment, error) {
	return s.listInstallments(ctx, "list_installments_by_status", bson.M{"status": string(status)})
}

func (s *Store) listInstallments(ctx context.Context, op string, filter bson.M) ([]models.Installment, error) {
	rows, err := findAll[mapper.InstallmentRow](ctx, s, op, collInstallments, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.InstallmentFromRow), nil
}

func (s *Store) UpdateInstallment(ctx context.Context, id int64, status models.InstallmentStatus, paymentDate *models.Date) (*models.Installment, error) {
	row, err := updateOne[mapper.InstallmentRow](ctx, s, "update_installment", collInstallments, mapper.InstallmentFields, id, statusPartial(string(status), paymentDate))
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.InstallmentFromRow), nil
}

// Teacher payments

func (s *Store) CreateTeacherPayment(ctx context.Context, payment models.TeacherPayment) (*models.TeacherPayment, error) {
	row := mapper.TeacherPaymentToRow(repository.TeacherPaymentDefaults(payment))
	if err := s.insert(ctx, "create_teacher_payment", collTeacherPayments, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.TeacherPaymentFromRow(row)
	return &created, nil
}

func (s *Store) GetTeacherPayment(ctx context.Context, id int64) (*models.TeacherPayment, error) {
	row, err := findOne[mapper.TeacherPaymentRow](ctx, s, "get_teacher_payment", collTeacherPayments, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.TeacherPaymentFromRow), nil
}

func (s *Store) ListTeacherPayments(ctx context.Context) ([]models.TeacherPayment, error) {
	return s.listTeacherPayments(ctx, "list_teacher_payments", nil)
}

func (s *Store) ListTeacherPaymentsByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherPayment, error) {
	return s.listTeacherPayments(ctx, "list_teacher_payments_by_teacher", bson.M{"teacher_id": teacherID})
}

func (s *Store) listTeacherPayments(ctx context.Context, op string, filter bson.M) ([]models.TeacherPayment, error) {
	rows, err := findAll[mapper.TeacherPaymentRow](ctx, s, op, collTeacherPayments, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.TeacherPaymentFromRow), nil
}

func (s *Store) UpdateTeacherPayment(ctx context.Context, id int64, status models.TeacherPaymentStatus, paymentDate *models.Date) (*models.TeacherPayment, error) {
	row, err := updateOne[mapper.TeacherPaymentRow](ctx, s, "update_teacher_payment", collTeacherPayments, mapper.TeacherPaymentFields, id, statusPartial(string(status), paymentDate))
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.TeacherPaymentFromRow), nil
}
