package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/bimbel-api/internal/models"
)

// HashFunc turns a plain fixture password into its stored form.
type HashFunc func(plain string) (string, error)

func fixtureString(s string) *string { return &s }

// SeedFixtures writes the demo dataset through the port. It is meant for empty stores.
// Attendance, results, installments and lendings point at student profile ids.
func SeedFixtures(ctx context.Context, store Store, hash HashFunc) error {
	type account struct {
		user     models.User
		password string
	}
	accounts := []account{
		{models.User{Username: "admin", FullName: "Administrator", Email: "admin@bimbel.local", Role: models.RoleAdmin}, "admin123"},
		{models.User{Username: "t1", FullName: "Budi Santoso", Email: "budi@bimbel.local", Role: models.RoleTeacher}, "teacher123"},
		{models.User{Username: "s1", FullName: "Ani Wijaya", Email: "ani@bimbel.local", Role: models.RoleStudent, Grade: fixtureString("10")}, "student123"},
		{models.User{Username: "s2", FullName: "Dodi Pratama", Email: "dodi@bimbel.local", Role: models.RoleStudent, Grade: fixtureString("11")}, "student123"},
	}

	users := make([]*models.User, len(accounts))
	for i, acc := range accounts {
		hashed, err := hash(acc.password)
		if err != nil {
			return fmt.Errorf("hash fixture password: %w", err)
		}
		acc.user.Password = hashed
		created, err := store.CreateUser(ctx, acc.user)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", acc.user.Username, err)
		}
		users[i] = created
	}
	teacher, s1, s2 := users[1], users[2], users[3]

	dob1 := models.NewDate(2008, time.May, 12)
	dob2 := models.NewDate(2007, time.November, 3)
	ani, err := store.CreateStudent(ctx, models.Student{UserID: s1.ID, ParentName: fixtureString("Slamet Wijaya"), Phone: fixtureString("081234567890"), Address: fixtureString("Jl. Merdeka 1"), DateOfBirth: &dob1})
	if err != nil {
		return fmt.Errorf("seed student profile: %w", err)
	}
	dodi, err := store.CreateStudent(ctx, models.Student{UserID: s2.ID, ParentName: fixtureString("Rina Pratama"), Phone: fixtureString("081298765432"), DateOfBirth: &dob2})
	if err != nil {
		return fmt.Errorf("seed student profile: %w", err)
	}

	math, err := store.CreateClass(ctx, models.Class{Name: "Matematika 10", Grade: "10", TeacherID: teacher.ID, Schedule: fixtureString("Senin & Rabu 15:00")})
	if err != nil {
		return fmt.Errorf("seed class: %w", err)
	}
	physics, err := store.CreateClass(ctx, models.Class{Name: "Fisika 11", Grade: "11", TeacherID: teacher.ID, Schedule: fixtureString("Selasa 16:00")})
	if err != nil {
		return fmt.Errorf("seed class: %w", err)
	}

	today := models.Today()
	yesterday := models.DateOf(today.AddDate(0, 0, -1))
	for _, a := range []models.Attendance{
		{StudentID: ani.ID, ClassID: math.ID, Date: yesterday, Status: models.AttendanceStatusPresent},
		{StudentID: dodi.ID, ClassID: physics.ID, Date: yesterday, Status: models.AttendanceStatusLate},
	} {
		if _, err := store.CreateAttendance(ctx, a); err != nil {
			return fmt.Errorf("seed attendance: %w", err)
		}
	}

	for _, r := range []models.TestResult{
		{Name: "Kuis Aljabar", StudentID: ani.ID, ClassID: math.ID, Date: yesterday, Score: 85, Status: models.TestResultStatusGraded},
		{Name: "Kuis Kinematika", StudentID: dodi.ID, ClassID: physics.ID, Date: yesterday},
	} {
		if _, err := store.CreateTestResult(ctx, r); err != nil {
			return fmt.Errorf("seed test result: %w", err)
		}
	}

	nextMonth := models.DateOf(today.AddDate(0, 1, 0))
	lastMonth := models.DateOf(today.AddDate(0, -1, 0))
	for _, inst := range []models.Installment{
		{StudentID: ani.ID, Amount: 750000, DueDate: lastMonth, PaymentDate: &lastMonth, Status: models.InstallmentStatusPaid},
		{StudentID: ani.ID, Amount: 750000, DueDate: nextMonth},
		{StudentID: dodi.ID, Amount: 750000, DueDate: lastMonth, Status: models.InstallmentStatusOverdue},
	} {
		if _, err := store.CreateInstallment(ctx, inst); err != nil {
			return fmt.Errorf("seed installment: %w", err)
		}
	}

	if _, err := store.CreateTeacherPayment(ctx, models.TeacherPayment{
		TeacherID:   teacher.ID,
		Amount:      3500000,
		Month:       lastMonth.Format(models.MonthLayout),
		Description: "Honor mengajar",
	}); err != nil {
		return fmt.Errorf("seed teacher payment: %w", err)
	}

	if _, err := store.CreateEvent(ctx, models.Event{
		Title:        "Tryout UTBK",
		Description:  fixtureString("Simulasi ujian masuk perguruan tinggi"),
		Date:         models.DateOf(today.AddDate(0, 0, 14)),
		Time:         fixtureString("08:00"),
		TargetGrades: fixtureString("11, 12"),
	}); err != nil {
		return fmt.Errorf("seed event: %w", err)
	}

	algebra, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Modul Aljabar", Subject: "Matematika", Grade: "10", TotalStock: 30, AvailableStock: 30})
	if err != nil {
		return fmt.Errorf("seed publication note: %w", err)
	}
	if _, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Modul Optik", Subject: "Fisika", Grade: "11", TotalStock: 10, AvailableStock: 4}); err != nil {
		return fmt.Errorf("seed publication note: %w", err)
	}

	if _, err := store.CreateStudentNote(ctx, models.StudentNote{StudentID: ani.ID, PublicationNoteID: algebra.ID, DateIssued: yesterday}); err != nil {
		return fmt.Errorf("seed student note: %w", err)
	}

	return nil
}
