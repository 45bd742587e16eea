// Package repository defines the storage port shared by every backend adapter.
//
// Single-record getters return (nil, nil) when the record does not exist. List methods return
// an empty slice, never nil, ordered by id ascending unless noted otherwise. Backend failures
// are reported as *errors.Error with code PERSISTENCE_ERROR.
package repository

import (
	"context"
	"time"

	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

// UserStore persists login accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, hash string) (*models.User, error)
}

// StudentStore persists student profiles.
type StudentStore interface {
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
}

// ClassStore persists classes.
type ClassStore interface {
	CreateClass(ctx context.Context, class models.Class) (*models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListClassesByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error)
	ListClassesByGrade(ctx context.Context, grade string) ([]models.Class, error)
}

// AttendanceStore persists attendance records.
type AttendanceStore interface {
	CreateAttendance(ctx context.Context, attendance models.Attendance) (*models.Attendance, error)
	GetAttendance(ctx context.Context, id int64) (*models.Attendance, error)
	ListAttendanceByClass(ctx context.Context, classID int64) ([]models.Attendance, error)
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error)
}

// TestResultStore persists test results.
type TestResultStore interface {
	CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error)
	GetTestResult(ctx context.Context, id int64) (*models.TestResult, error)
	ListTestResultsByClass(ctx context.Context, classID int64) ([]models.TestResult, error)
	ListTestResultsByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error)
	UpdateTestResult(ctx context.Context, id int64, score float64, status models.TestResultStatus) (*models.TestResult, error)
}

// FinanceStore persists installments and teacher payments. A nil paymentDate on update leaves
// the stored date unchanged.
type FinanceStore interface {
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
}

// EventStore persists calendar events. Lists are ordered by date, then id.
type EventStore interface {
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListUpcomingEvents(ctx context.Context, from models.Date) ([]models.Event, error)
}

// PublicationStore persists publication stock and lending records.
//
// CreateStudentNote with IsReturned false takes one copy out of the referenced note's
// available stock in the same atomic step; available stock never drops below zero.
// UpdateStudentNoteStatus never touches stock.
type PublicationStore interface {
	CreatePublicationNote(ctx context.Context, note models.PublicationNote) (*models.PublicationNote, error)
	GetPublicationNote(ctx context.Context, id int64) (*models.PublicationNote, error)
	ListPublicationNotes(ctx context.Context) ([]models.PublicationNote, error)
	ListPublicationNotesByGrade(ctx context.Context, grade string) ([]models.PublicationNote, error)
	ListLowStockPublicationNotes(ctx context.Context) ([]models.PublicationNote, error)
	UpdateStock(ctx context.Context, id int64, totalStock, availableStock int) (*models.PublicationNote, error)

	CreateStudentNote(ctx context.Context, note models.StudentNote) (*models.StudentNote, error)
	GetStudentNote(ctx context.Context, id int64) (*models.StudentNote, error)
	ListStudentNotes(ctx context.Context) ([]models.StudentNote, error)
	ListStudentNotesByStudent(ctx context.Context, studentID int64) ([]models.StudentNote, error)
	ListStudentNotesByPublication(ctx context.Context, noteID int64) ([]models.StudentNote, error)
	UpdateStudentNoteStatus(ctx context.Context, id int64, update models.StudentNoteStatusUpdate) (*models.StudentNote, error)
}

// Store is the full storage port. Exactly one implementation is active per process.
type Store interface {
	UserStore
	StudentStore
	ClassStore
	AttendanceStore
	TestResultStore
	FinanceStore
	EventStore
	PublicationStore
}

// Persistence wraps a backend failure for operation op.
func Persistence(op string, err error) error {
	return appErrors.Persistence(err, op)
}

// Now returns the current time in UTC truncated to milliseconds, the precision every backend
// can store losslessly.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// UserDefaults and the other *Defaults helpers fill the fields defaulted on insert. Every
// adapter applies them before writing so all backends agree on the stored shape.
func UserDefaults(u models.User) models.User {
	if u.JoinDate.IsZero() {
		u.JoinDate = Now()
	} else {
		u.JoinDate = u.JoinDate.UTC().Truncate(time.Millisecond)
	}
	return u
}

func TestResultDefaults(r models.TestResult) models.TestResult {
	if r.MaxScore == 0 {
		r.MaxScore = models.DefaultMaxScore
	}
	if r.Status == "" {
		r.Status = models.TestResultStatusPending
	}
	return r
}

func InstallmentDefaults(i models.Installment) models.Installment {
	if i.Status == "" {
		i.Status = models.InstallmentStatusPending
	}
	return i
}

func TeacherPaymentDefaults(p models.TeacherPayment) models.TeacherPayment {
	if p.Status == "" {
		p.Status = models.TeacherPaymentStatusPending
	}
	return p
}

// PublicationNoteDefaults expects the caller to have already resolved availableStock; the
// service layer maps an omitted value to totalStock.
func PublicationNoteDefaults(n models.PublicationNote) models.PublicationNote {
	if n.LowStockThreshold == 0 {
		n.LowStockThreshold = models.DefaultLowStockThreshold
	}
	n.LastRestocked = Now()
	return n
}

func StudentNoteDefaults(n models.StudentNote) models.StudentNote {
	if n.DateIssued.IsZero() {
		n.DateIssued = models.Today()
	}
	return n
}
