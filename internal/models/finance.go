package models

// InstallmentStatus is the lifecycle of a scheduled fee payment.
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Valid returns true when the status is a supported value.
func (s InstallmentStatus) Valid() bool {
	switch s {
	case InstallmentStatusPending, InstallmentStatusOverdue, InstallmentStatusPaid:
		return true
	default:
		return false
	}
}

// Installment is one scheduled fee payment owed by a student.
type Installment struct {
	ID          int64             `json:"id"`
	StudentID   int64             `json:"studentId"`
	Amount      float64           `json:"amount"`
	DueDate     Date              `json:"dueDate"`
	PaymentDate *Date             `json:"paymentDate"`
	Status      InstallmentStatus `json:"status"`
}

// TeacherPaymentStatus is the lifecycle of a staff pay entry. There is no overdue state.
type TeacherPaymentStatus string

const (
	TeacherPaymentStatusPending TeacherPaymentStatus = "pending"
	TeacherPaymentStatusPaid    TeacherPaymentStatus = "paid"
)

// Valid returns true when the status is a supported value.
func (s TeacherPaymentStatus) Valid() bool {
	return s == TeacherPaymentStatusPending || s == TeacherPaymentStatusPaid
}

// MonthLayout is the year-month format used by TeacherPayment.Month.
const MonthLayout = "2006-01"

// TeacherPayment is the pay owed to a teacher for one month.
type TeacherPayment struct {
	ID          int64                `json:"id"`
	TeacherID   int64                `json:"teacherId"`
	Amount      float64              `json:"amount"`
	Month       string               `json:"month"`
	Description string               `json:"description"`
	PaymentDate *Date                `json:"paymentDate"`
	Status      TeacherPaymentStatus `json:"status"`
}
