package memory

import "github.com/noah-isme/bimbel-api/internal/models"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u models.User) models.User {
	u.Grade = clonePtr(u.Grade)
	return u
}

func cloneStudent(s models.Student) models.Student {
	s.ParentName = clonePtr(s.ParentName)
	s.Phone = clonePtr(s.Phone)
	s.Address = clonePtr(s.Address)
	s.DateOfBirth = clonePtr(s.DateOfBirth)
	return s
}

func cloneClass(c models.Class) models.Class {
	c.Schedule = clonePtr(c.Schedule)
	return c
}

func cloneAttendance(a models.Attendance) models.Attendance { return a }

func cloneTestResult(r models.TestResult) models.TestResult { return r }

func cloneInstallment(i models.Installment) models.Installment {
	i.PaymentDate = clonePtr(i.PaymentDate)
	return i
}

func cloneTeacherPayment(p models.TeacherPayment) models.TeacherPayment {
	p.PaymentDate = clonePtr(p.PaymentDate)
	return p
}

func cloneEvent(e models.Event) models.Event {
	e.Description = clonePtr(e.Description)
	e.Time = clonePtr(e.Time)
	e.TargetGrades = clonePtr(e.TargetGrades)
	return e
}

func clonePublicationNote(n models.PublicationNote) models.PublicationNote {
	n.Description = clonePtr(n.Description)
	return n
}

func cloneStudentNote(n models.StudentNote) models.StudentNote {
	n.ReturnDate = clonePtr(n.ReturnDate)
	n.Condition = clonePtr(n.Condition)
	n.Notes = clonePtr(n.Notes)
	return n
}
