package mapper

import (
	"time"

	"github.com/noah-isme/bimbel-api/internal/models"
)

// UserRow is the native shape of a user.
type UserRow struct {
	ID       int64     `db:"id" bson:"_id"`
	Username string    `db:"username" bson:"username"`
	Password string    `db:"password" bson:"password"`
	FullName string    `db:"full_name" bson:"full_name"`
	Email    string    `db:"email" bson:"email"`
	Role     string    `db:"role" bson:"role"`
	Grade    *string   `db:"grade" bson:"grade"`
	JoinDate time.Time `db:"join_date" bson:"join_date"`
}

func UserToRow(u models.User) UserRow {
	return UserRow{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
		Grade:    u.Grade,
		JoinDate: u.JoinDate.UTC(),
	}
}

func UserFromRow(r UserRow) models.User {
	return models.User{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		FullName: r.FullName,
		Email:    r.Email,
		Role:     models.UserRole(r.Role),
		Grade:    r.Grade,
		JoinDate: r.JoinDate.UTC(),
	}
}

// StudentRow is the native shape of a student profile.
type StudentRow struct {
	ID          int64      `db:"id" bson:"_id"`
	UserID      int64      `db:"user_id" bson:"user_id"`
	ParentName  *string    `db:"parent_name" bson:"parent_name"`
	Phone       *string    `db:"phone" bson:"phone"`
	Address     *string    `db:"address" bson:"address"`
	DateOfBirth *time.Time `db:"date_of_birth" bson:"date_of_birth"`
}

func StudentToRow(s models.Student) StudentRow {
	return StudentRow{
		ID:          s.ID,
		UserID:      s.UserID,
		ParentName:  s.ParentName,
		Phone:       s.Phone,
		Address:     s.Address,
		DateOfBirth: s.DateOfBirth.TimePtr(),
	}
}

func StudentFromRow(r StudentRow) models.Student {
	return models.Student{
		ID:          r.ID,
		UserID:      r.UserID,
		ParentName:  r.ParentName,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: models.DatePtr(r.DateOfBirth),
	}
}

// ClassRow is the native shape of a class.
type ClassRow struct {
	ID        int64   `db:"id" bson:"_id"`
	Name      string  `db:"name" bson:"name"`
	Grade     string  `db:"grade" bson:"grade"`
	TeacherID int64   `db:"teacher_id" bson:"teacher_id"`
	Schedule  *string `db:"schedule" bson:"schedule"`
}

func ClassToRow(c models.Class) ClassRow {
	return ClassRow{ID: c.ID, Name: c.Name, Grade: c.Grade, TeacherID: c.TeacherID, Schedule: c.Schedule}
}

func ClassFromRow(r ClassRow) models.Class {
	return models.Class{ID: r.ID, Name: r.Name, Grade: r.Grade, TeacherID: r.TeacherID, Schedule: r.Schedule}
}

// AttendanceRow is the native shape of an attendance record.
type AttendanceRow struct {
	ID        int64     `db:"id" bson:"_id"`
	StudentID int64     `db:"student_id" bson:"student_id"`
	ClassID   int64     `db:"class_id" bson:"class_id"`
	Date      time.Time `db:"date" bson:"date"`
	Status    string    `db:"status" bson:"status"`
}

func AttendanceToRow(a models.Attendance) AttendanceRow {
	return AttendanceRow{
		ID:        a.ID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      a.Date.Time,
		Status:    string(a.Status),
	}
}

func AttendanceFromRow(r AttendanceRow) models.Attendance {
	return models.Attendance{
		ID:        r.ID,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		Date:      models.DateOf(r.Date),
		Status:    models.AttendanceStatus(r.Status),
	}
}

// TestResultRow is the native shape of a test result.
type TestResultRow struct {
	ID        int64     `db:"id" bson:"_id"`
	Name      string    `db:"name" bson:"name"`
	StudentID int64     `db:"student_id" bson:"student_id"`
	ClassID   int64     `db:"class_id" bson:"class_id"`
	Date      time.Time `db:"date" bson:"date"`
	Score     float64   `db:"score" bson:"score"`
	MaxScore  float64   `db:"max_score" bson:"max_score"`
	Status    string    `db:"status" bson:"status"`
}

func TestResultToRow(t models.TestResult) TestResultRow {
	return TestResultRow{
		ID:        t.ID,
		Name:      t.Name,
		StudentID: t.StudentID,
		ClassID:   t.ClassID,
		Date:      t.Date.Time,
		Score:     t.Score,
		MaxScore:  t.MaxScore,
		Status:    string(t.Status),
	}
}

func TestResultFromRow(r TestResultRow) models.TestResult {
	return models.TestResult{
		ID:        r.ID,
		Name:      r.Name,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		Date:      models.DateOf(r.Date),
		Score:     r.Score,
		MaxScore:  r.MaxScore,
		Status:    models.TestResultStatus(r.Status),
	}
}

// InstallmentRow is the native shape of an installment.
type InstallmentRow struct {
	ID          int64      `db:"id" bson:"_id"`
	StudentID   int64      `db:"student_id" bson:"student_id"`
	Amount      float64    `db:"amount" bson:"amount"`
	DueDate     time.Time  `db:"due_date" bson:"due_date"`
	PaymentDate *time.Time `db:"payment_date" bson:"payment_date"`
	Status      string     `db:"status" bson:"status"`
}

func InstallmentToRow(i models.Installment) InstallmentRow {
	return InstallmentRow{
		ID:          i.ID,
		StudentID:   i.StudentID,
		Amount:      i.Amount,
		DueDate:     i.DueDate.Time,
		PaymentDate: i.PaymentDate.TimePtr(),
		Status:      string(i.Status),
	}
}

func InstallmentFromRow(r InstallmentRow) models.Installment {
	return models.Installment{
		ID:          r.ID,
		StudentID:   r.StudentID,
		Amount:      r.Amount,
		DueDate:     models.DateOf(r.DueDate),
		PaymentDate: models.DatePtr(r.PaymentDate),
		Status:      models.InstallmentStatus(r.Status),
	}
}

// TeacherPaymentRow is the native shape of a teacher payment.
type TeacherPaymentRow struct {
	ID          int64      `db:"id" bson:"_id"`
	TeacherID   int64      `db:"teacher_id" bson:"teacher_id"`
	Amount      float64    `db:"amount" bson:"amount"`
	Month       string     `db:"month" bson:"month"`
	Description string     `db:"description" bson:"description"`
	PaymentDate *time.Time `db:"payment_date" bson:"payment_date"`
	Status      string     `db:"status" bson:"status"`
}

func TeacherPaymentToRow(p models.TeacherPayment) TeacherPaymentRow {
	return TeacherPaymentRow{
		ID:          p.ID,
		TeacherID:   p.TeacherID,
		Amount:      p.Amount,
		Month:       p.Month,
		Description: p.Description,
		PaymentDate: p.PaymentDate.TimePtr(),
		Status:      string(p.Status),
	}
}

func TeacherPaymentFromRow(r TeacherPaymentRow) models.TeacherPayment {
	return models.TeacherPayment{
		ID:          r.ID,
		TeacherID:   r.TeacherID,
		Amount:      r.Amount,
		Month:       r.Month,
		Description: r.Description,
		PaymentDate: models.DatePtr(r.PaymentDate),
		Status:      models.TeacherPaymentStatus(r.Status),
	}
}

// EventRow is the native shape of a calendar event.
type EventRow struct {
	ID           int64     `db:"id" bson:"_id"`
	Title        string    `db:"title" bson:"title"`
	Description  *string   `db:"description" bson:"description"`
	Date         time.Time `db:"date" bson:"date"`
	Time         *string   `db:"time" bson:"time"`
	TargetGrades *string   `db:"target_grades" bson:"target_grades"`
}

func EventToRow(e models.Event) EventRow {
	return EventRow{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date.Time,
		Time:         e.Time,
		TargetGrades: e.TargetGrades,
	}
}

func EventFromRow(r EventRow) models.Event {
	return models.Event{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Date:         models.DateOf(r.Date),
		Time:         r.Time,
		TargetGrades: r.TargetGrades,
	}
}

// PublicationNoteRow is the native shape of a publication note.
type PublicationNoteRow struct {
	ID                int64     `db:"id" bson:"_id"`
	Title             string    `db:"title" bson:"title"`
	Subject           string    `db:"subject" bson:"subject"`
	Grade             string    `db:"grade" bson:"grade"`
	TotalStock        int       `db:"total_stock" bson:"total_stock"`
	AvailableStock    int       `db:"available_stock" bson:"available_stock"`
	LowStockThreshold int       `db:"low_stock_threshold" bson:"low_stock_threshold"`
	LastRestocked     time.Time `db:"last_restocked" bson:"last_restocked"`
	Description       *string   `db:"description" bson:"description"`
}

func PublicationNoteToRow(n models.PublicationNote) PublicationNoteRow {
	return PublicationNoteRow{
		ID:                n.ID,
		Title:             n.Title,
		Subject:           n.Subject,
		Grade:             n.Grade,
		TotalStock:        n.TotalStock,
		AvailableStock:    n.AvailableStock,
		LowStockThreshold: n.LowStockThreshold,
		LastRestocked:     n.LastRestocked.UTC(),
		Description:       n.Description,
	}
}

func PublicationNoteFromRow(r PublicationNoteRow) models.PublicationNote {
	return models.PublicationNote{
		ID:                r.ID,
		Title:             r.Title,
		Subject:           r.Subject,
		Grade:             r.Grade,
		TotalStock:        r.TotalStock,
		AvailableStock:    r.AvailableStock,
		LowStockThreshold: r.LowStockThreshold,
		LastRestocked:     r.LastRestocked.UTC(),
		Description:       r.Description,
	}
}

// StudentNoteRow is the native shape of a lending record.
type StudentNoteRow struct {
	ID         int64      `db:"id" bson:"_id"`
	StudentID  int64      `db:"student_id" bson:"student_id"`
	NoteID     int64      `db:"note_id" bson:"note_id"`
	DateIssued time.Time  `db:"date_issued" bson:"date_issued"`
	IsReturned bool       `db:"is_returned" bson:"is_returned"`
	ReturnDate *time.Time `db:"return_date" bson:"return_date"`
	Condition  *string    `db:"condition" bson:"condition"`
	Notes      *string    `db:"notes" bson:"notes"`
}

func StudentNoteToRow(n models.StudentNote) StudentNoteRow {
	var condition *string
	if n.Condition != nil {
		c := string(*n.Condition)
		condition = &c
	}
	return StudentNoteRow{
		ID:         n.ID,
		StudentID:  n.StudentID,
		NoteID:     n.PublicationNoteID,
		DateIssued: n.DateIssued.Time,
		IsReturned: n.IsReturned,
		ReturnDate: n.ReturnDate.TimePtr(),
		Condition:  condition,
		Notes:      n.Notes,
	}
}

func StudentNoteFromRow(r StudentNoteRow) models.StudentNote {
	var condition *models.NoteCondition
	if r.Condition != nil {
		c := models.NoteCondition(*r.Condition)
		condition = &c
	}
	return models.StudentNote{
		ID:                r.ID,
		StudentID:         r.StudentID,
		PublicationNoteID: r.NoteID,
		DateIssued:        models.DateOf(r.DateIssued),
		IsReturned:        r.IsReturned,
		ReturnDate:        models.DatePtr(r.ReturnDate),
		Condition:         condition,
		Notes:             r.Notes,
	}
}
