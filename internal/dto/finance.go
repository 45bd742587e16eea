package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// CreateInstallmentRequest schedules a fee payment.
type CreateInstallmentRequest struct {
	StudentID int64                    `json:"studentId" validate:"required,gt=0"`
	Amount    float64                  `json:"amount" validate:"gt=0"`
	DueDate   models.Date              `json:"dueDate" validate:"required"`
	Status    models.InstallmentStatus `json:"status" validate:"omitempty,oneof=pending overdue paid"`
}

// UpdateInstallmentRequest moves an installment to status. A nil PaymentDate keeps the stored one.
type UpdateInstallmentRequest struct {
	Status      models.InstallmentStatus `json:"status" validate:"required,oneof=pending overdue paid"`
	PaymentDate *models.Date             `json:"paymentDate"`
}

// CreateTeacherPaymentRequest records pay owed to a teacher for a month.
type CreateTeacherPaymentRequest struct {
	TeacherID   int64                       `json:"teacherId" validate:"required,gt=0"`
	Amount      float64                     `json:"amount" validate:"gt=0"`
	Month       string                      `json:"month" validate:"required,yearmonth"`
	Description string                      `json:"description"`
	Status      models.TeacherPaymentStatus `json:"status" validate:"omitempty,oneof=pending paid"`
}

// UpdateTeacherPaymentRequest moves a teacher payment to status.
type UpdateTeacherPaymentRequest struct {
	Status      models.TeacherPaymentStatus `json:"status" validate:"required,oneof=pending paid"`
	PaymentDate *models.Date                `json:"paymentDate"`
}

// InstallmentFilter narrows installment listings. StudentID wins over Status.
type InstallmentFilter struct {
	StudentID int64
	Status    string
}
