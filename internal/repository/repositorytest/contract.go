// Package repositorytest holds the behavioural contract every repository.Store adapter must
// satisfy. Adapter packages run it against their own backend.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) repository.Store

func strPtr(s string) *string { return &s }

// people holds real referenced rows so relational adapters can enforce their foreign keys.
type people struct {
	teachers [2]int64
	students [3]int64
}

func seedPeople(t *testing.T, store repository.Store) people {
	t.Helper()
	ctx := context.Background()
	var p people
	for i, name := range []string{"teacher-a", "teacher-b"} {
		u, err := store.CreateUser(ctx, models.User{Username: name, Password: "hash", FullName: name, Email: name + "@example.com", Role: models.RoleTeacher})
		require.NoError(t, err)
		p.teachers[i] = u.ID
	}
	for i, name := range []string{"student-a", "student-b", "student-c"} {
		u, err := store.CreateUser(ctx, models.User{Username: name, Password: "hash", FullName: name, Email: name + "@example.com", Role: models.RoleStudent})
		require.NoError(t, err)
		st, err := store.CreateStudent(ctx, models.Student{UserID: u.ID})
		require.NoError(t, err)
		p.students[i] = st.ID
	}
	return p
}

func seedClass(t *testing.T, store repository.Store, name string, teacherID int64) int64 {
	t.Helper()
	c, err := store.CreateClass(context.Background(), models.Class{Name: name, Grade: "10", TeacherID: teacherID})
	require.NoError(t, err)
	return c.ID
}

// Run executes the contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Students", func(t *testing.T) { testStudents(t, newStore(t)) })
	t.Run("Classes", func(t *testing.T) { testClasses(t, newStore(t)) })
	t.Run("Attendance", func(t *testing.T) { testAttendance(t, newStore(t)) })
	t.Run("TestResults", func(t *testing.T) { testTestResults(t, newStore(t)) })
	t.Run("Installments", func(t *testing.T) { testInstallments(t, newStore(t)) })
	t.Run("TeacherPayments", func(t *testing.T) { testTeacherPayments(t, newStore(t)) })
	t.Run("Events", func(t *testing.T) { testEvents(t, newStore(t)) })
	t.Run("PublicationNotes", func(t *testing.T) { testPublicationNotes(t, newStore(t)) })
	t.Run("StudentNotes", func(t *testing.T) { testStudentNotes(t, newStore(t)) })
	t.Run("Fixtures", func(t *testing.T) { testFixtures(t, newStore(t)) })
	t.Run("ValuesAreCopied", func(t *testing.T) { testValuesAreCopied(t, newStore(t)) })
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()

	created, err := store.CreateUser(ctx, models.User{Username: "t1", Password: "hash", FullName: "Teacher One", Email: "t1@example.com", Role: models.RoleTeacher})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.False(t, created.JoinDate.IsZero())

	got, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byName, err := store.GetUserByUsername(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	missing, err := store.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = store.GetUser(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.CreateUser(ctx, models.User{Username: "t1", Password: "x", FullName: "Dup", Email: "d@example.com", Role: models.RoleTeacher})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	student, err := store.CreateUser(ctx, models.User{Username: "s1", Password: "hash", FullName: "Student One", Email: "s1@example.com", Role: models.RoleStudent, Grade: strPtr("10")})
	require.NoError(t, err)

	all, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, student.ID, all[1].ID)

	students, err := store.ListUsersByRole(ctx, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "10", *students[0].Grade)

	admins, err := store.ListUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, admins)
	assert.Empty(t, admins)

	updated, err := store.UpdateUserPassword(ctx, created.ID, "rehashed")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "rehashed", updated.Password)

	absent, err := store.UpdateUserPassword(ctx, created.ID+1000, "x")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testStudents(t *testing.T, store repository.Store) {
	ctx := context.Background()
	user, err := store.CreateUser(ctx, models.User{Username: "s1", Password: "hash", FullName: "Student", Email: "s1@example.com", Role: models.RoleStudent})
	require.NoError(t, err)

	dob := models.NewDate(2008, time.March, 14)
	created, err := store.CreateStudent(ctx, models.Student{UserID: user.ID, ParentName: strPtr("Parent"), Phone: strPtr("0812"), DateOfBirth: &dob})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := store.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "2008-03-14", got.DateOfBirth.String())
	assert.Nil(t, got.Address)

	byUser, err := store.GetStudentByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byUser)

	none, err := store.GetStudentByUserID(ctx, user.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testClasses(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	math, err := store.CreateClass(ctx, models.Class{Name: "Math", Grade: "10", TeacherID: p.teachers[0], Schedule: strPtr("Mon 10:00")})
	require.NoError(t, err)
	physics, err := store.CreateClass(ctx, models.Class{Name: "Physics", Grade: "11", TeacherID: p.teachers[1]})
	require.NoError(t, err)
	_, err = store.CreateClass(ctx, models.Class{Name: "Chemistry", Grade: "10", TeacherID: p.teachers[1]})
	require.NoError(t, err)

	got, err := store.GetClass(ctx, math.ID)
	require.NoError(t, err)
	assert.Equal(t, math, got)

	all, err := store.ListClasses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Less(t, all[0].ID, all[1].ID)

	byTeacher, err := store.ListClassesByTeacher(ctx, p.teachers[1])
	require.NoError(t, err)
	require.Len(t, byTeacher, 2)
	assert.Equal(t, physics.ID, byTeacher[0].ID)

	byGrade, err := store.ListClassesByGrade(ctx, "10")
	require.NoError(t, err)
	assert.Len(t, byGrade, 2)

	none, err := store.ListClassesByGrade(ctx, "12")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testAttendance(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	math := seedClass(t, store, "Math", p.teachers[0])
	physics := seedClass(t, store, "Physics", p.teachers[1])
	day := models.NewDate(2024, time.July, 3)

	first, err := store.CreateAttendance(ctx, models.Attendance{StudentID: p.students[0], ClassID: math, Date: day, Status: models.AttendanceStatusPresent})
	require.NoError(t, err)
	// Duplicate (student, class, date) rows are accepted.
	second, err := store.CreateAttendance(ctx, models.Attendance{StudentID: p.students[0], ClassID: math, Date: day, Status: models.AttendanceStatusAbsent})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	_, err = store.CreateAttendance(ctx, models.Attendance{StudentID: p.students[1], ClassID: physics, Date: day, Status: models.AttendanceStatusLate})
	require.NoError(t, err)

	got, err := store.GetAttendance(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	byClass, err := store.ListAttendanceByClass(ctx, math)
	require.NoError(t, err)
	assert.Len(t, byClass, 2)

	byStudent, err := store.ListAttendanceByStudent(ctx, p.students[1])
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)

	for _, status := range []models.AttendanceStatus{models.AttendanceStatusLate, models.AttendanceStatusAbsent, models.AttendanceStatusPresent, models.AttendanceStatusPresent} {
		updated, err := store.UpdateAttendance(ctx, first.ID, status)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, day, updated.Date)
	}

	absent, err := store.UpdateAttendance(ctx, first.ID+1000, models.AttendanceStatusLate)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testTestResults(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	math := seedClass(t, store, "Math", p.teachers[0])
	created, err := store.CreateTestResult(ctx, models.TestResult{Name: "Quiz 1", StudentID: p.students[0], ClassID: math, Date: models.NewDate(2024, time.July, 4), Score: 0})
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultMaxScore), created.MaxScore)
	assert.Equal(t, models.TestResultStatusPending, created.Status)

	explicit, err := store.CreateTestResult(ctx, models.TestResult{Name: "Quiz 1", StudentID: p.students[1], ClassID: math, Date: models.NewDate(2024, time.July, 4), Score: 40, MaxScore: 50, Status: models.TestResultStatusGraded})
	require.NoError(t, err)
	assert.Equal(t, float64(50), explicit.MaxScore)

	got, err := store.GetTestResult(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byClass, err := store.ListTestResultsByClass(ctx, math)
	require.NoError(t, err)
	assert.Len(t, byClass, 2)

	byStudent, err := store.ListTestResultsByStudent(ctx, p.students[1])
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, explicit.ID, byStudent[0].ID)

	updated, err := store.UpdateTestResult(ctx, created.ID, 88.5, models.TestResultStatusGraded)
	require.NoError(t, err)
	assert.Equal(t, 88.5, updated.Score)
	assert.Equal(t, models.TestResultStatusGraded, updated.Status)

	// Score and status move independently.
	reverted, err := store.UpdateTestResult(ctx, created.ID, 90, models.TestResultStatusPending)
	require.NoError(t, err)
	assert.Equal(t, float64(90), reverted.Score)
	assert.Equal(t, models.TestResultStatusPending, reverted.Status)
}

func testInstallments(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	due := models.NewDate(2024, time.August, 1)

	created, err := store.CreateInstallment(ctx, models.Installment{StudentID: p.students[0], Amount: 500000, DueDate: due})
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPending, created.Status)
	assert.Nil(t, created.PaymentDate)

	other, err := store.CreateInstallment(ctx, models.Installment{StudentID: p.students[1], Amount: 250000, DueDate: due, Status: models.InstallmentStatusOverdue})
	require.NoError(t, err)

	got, err := store.GetInstallment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	all, err := store.ListInstallments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byStudent, err := store.ListInstallmentsByStudent(ctx, p.students[1])
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, other.ID, byStudent[0].ID)

	overdue, err := store.ListInstallmentsByStatus(ctx, models.InstallmentStatusOverdue)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	// Paid without a date leaves the date empty.
	paid, err := store.UpdateInstallment(ctx, created.ID, models.InstallmentStatusPaid, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, paid.Status)
	assert.Nil(t, paid.PaymentDate)

	payDay := models.NewDate(2024, time.July, 30)
	paid, err = store.UpdateInstallment(ctx, created.ID, models.InstallmentStatusPaid, &payDay)
	require.NoError(t, err)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, payDay, *paid.PaymentDate)

	// A later update without a date keeps the stored one.
	back, err := store.UpdateInstallment(ctx, created.ID, models.InstallmentStatusPending, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPending, back.Status)
	require.NotNil(t, back.PaymentDate)
	assert.Equal(t, payDay, *back.PaymentDate)

	absent, err := store.UpdateInstallment(ctx, created.ID+1000, models.InstallmentStatusPaid, nil)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testTeacherPayments(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	created, err := store.CreateTeacherPayment(ctx, models.TeacherPayment{TeacherID: p.teachers[0], Amount: 2000000, Month: "2024-07", Description: "July"})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherPaymentStatusPending, created.Status)

	_, err = store.CreateTeacherPayment(ctx, models.TeacherPayment{TeacherID: p.teachers[1], Amount: 1000000, Month: "2024-07", Description: "July"})
	require.NoError(t, err)

	got, err := store.GetTeacherPayment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	all, err := store.ListTeacherPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := store.ListTeacherPaymentsByTeacher(ctx, p.teachers[0])
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	payDay := models.NewDate(2024, time.August, 5)
	paid, err := store.UpdateTeacherPayment(ctx, created.ID, models.TeacherPaymentStatusPaid, &payDay)
	require.NoError(t, err)
	assert.Equal(t, models.TeacherPaymentStatusPaid, paid.Status)
	assert.Equal(t, payDay, *paid.PaymentDate)
}

func testEvents(t *testing.T, store repository.Store) {
	ctx := context.Background()
	late, err := store.CreateEvent(ctx, models.Event{Title: "Graduation", Date: models.NewDate(2024, time.December, 20)})
	require.NoError(t, err)
	early, err := store.CreateEvent(ctx, models.Event{Title: "Tryout", Date: models.NewDate(2024, time.September, 1), Time: strPtr("08:00"), TargetGrades: strPtr("10, 11")})
	require.NoError(t, err)
	past, err := store.CreateEvent(ctx, models.Event{Title: "Orientation", Date: models.NewDate(2024, time.July, 1)})
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, early, got)

	all, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{past.ID, early.ID, late.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	upcoming, err := store.ListUpcomingEvents(ctx, models.NewDate(2024, time.September, 1))
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, early.ID, upcoming[0].ID)
	assert.Equal(t, late.ID, upcoming[1].ID)
}

func testPublicationNotes(t *testing.T, store repository.Store) {
	ctx := context.Background()
	before := repository.Now().Add(-time.Second)

	algebra, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Algebra", Subject: "Math", Grade: "10", TotalStock: 20, AvailableStock: 20})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLowStockThreshold, algebra.LowStockThreshold)
	assert.True(t, algebra.LastRestocked.After(before))

	optics, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Optics", Subject: "Physics", Grade: "11", TotalStock: 5, AvailableStock: 2, LowStockThreshold: 3})
	require.NoError(t, err)

	got, err := store.GetPublicationNote(ctx, algebra.ID)
	require.NoError(t, err)
	assert.Equal(t, algebra, got)

	all, err := store.ListPublicationNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byGrade, err := store.ListPublicationNotesByGrade(ctx, "11")
	require.NoError(t, err)
	require.Len(t, byGrade, 1)
	assert.Equal(t, optics.ID, byGrade[0].ID)

	low, err := store.ListLowStockPublicationNotes(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, optics.ID, low[0].ID)

	restocked, err := store.UpdateStock(ctx, optics.ID, 10, 9)
	require.NoError(t, err)
	assert.Equal(t, 10, restocked.TotalStock)
	assert.Equal(t, 9, restocked.AvailableStock)
	assert.False(t, restocked.LastRestocked.Before(optics.LastRestocked))

	low, err = store.ListLowStockPublicationNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	absent, err := store.UpdateStock(ctx, optics.ID+1000, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testStudentNotes(t *testing.T, store repository.Store) {
	ctx := context.Background()
	p := seedPeople(t, store)
	note, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Algebra", Subject: "Math", Grade: "10", TotalStock: 5, AvailableStock: 1})
	require.NoError(t, err)

	issued, err := store.CreateStudentNote(ctx, models.StudentNote{StudentID: p.students[0], PublicationNoteID: note.ID})
	require.NoError(t, err)
	assert.False(t, issued.DateIssued.IsZero())
	assert.False(t, issued.IsReturned)

	after, err := store.GetPublicationNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableStock)

	// Stock is clamped at zero.
	_, err = store.CreateStudentNote(ctx, models.StudentNote{StudentID: p.students[1], PublicationNoteID: note.ID, DateIssued: models.NewDate(2024, time.July, 5)})
	require.NoError(t, err)
	after, err = store.GetPublicationNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableStock)
	assert.Equal(t, 5, after.TotalStock)

	// Recording an already returned copy does not touch stock.
	_, err = store.UpdateStock(ctx, note.ID, 5, 3)
	require.NoError(t, err)
	_, err = store.CreateStudentNote(ctx, models.StudentNote{StudentID: p.students[2], PublicationNoteID: note.ID, IsReturned: true})
	require.NoError(t, err)
	after, err = store.GetPublicationNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.AvailableStock)

	all, err := store.ListStudentNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byStudent, err := store.ListStudentNotesByStudent(ctx, p.students[0])
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, issued.ID, byStudent[0].ID)

	byNote, err := store.ListStudentNotesByPublication(ctx, note.ID)
	require.NoError(t, err)
	assert.Len(t, byNote, 3)

	returnDay := models.NewDate(2024, time.August, 1)
	cond := models.NoteConditionFair
	returned, err := store.UpdateStudentNoteStatus(ctx, issued.ID, models.StudentNoteStatusUpdate{IsReturned: true, ReturnDate: &returnDay, Condition: &cond, Notes: strPtr("cover torn")})
	require.NoError(t, err)
	assert.True(t, returned.IsReturned)
	assert.Equal(t, returnDay, *returned.ReturnDate)
	assert.Equal(t, cond, *returned.Condition)
	assert.Equal(t, "cover torn", *returned.Notes)

	// Returning a copy never restocks.
	after, err = store.GetPublicationNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.AvailableStock)

	absent, err := store.UpdateStudentNoteStatus(ctx, issued.ID+1000, models.StudentNoteStatusUpdate{IsReturned: true})
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testFixtures(t *testing.T, store repository.Store) {
	ctx := context.Background()
	require.NoError(t, repository.SeedFixtures(ctx, store, func(plain string) (string, error) { return "hashed:" + plain, nil }))

	admins, err := store.ListUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "hashed:admin123", admins[0].Password)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	lendings, err := store.ListStudentNotes(ctx)
	require.NoError(t, err)
	require.Len(t, lendings, 1)

	note, err := store.GetPublicationNote(ctx, lendings[0].PublicationNoteID)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, note.TotalStock-1, note.AvailableStock)

	// Student-facing rows point at the profile, not the login.
	s1, err := store.GetUserByUsername(ctx, "s1")
	require.NoError(t, err)
	profile, err := store.GetStudentByUserID(ctx, s1.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)

	attendance, err := store.ListAttendanceByStudent(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	owner, err := store.GetStudent(ctx, attendance[0].StudentID)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, s1.ID, owner.UserID)

	installments, err := store.ListInstallmentsByStudent(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, installments, 2)

	results, err := store.ListTestResultsByStudent(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	assert.Equal(t, profile.ID, lendings[0].StudentID)
}

func testValuesAreCopied(t *testing.T, store repository.Store) {
	ctx := context.Background()
	note, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Algebra", Subject: "Math", Grade: "10", TotalStock: 5, AvailableStock: 5})
	require.NoError(t, err)

	p := seedPeople(t, store)
	remark := "issued with cover"
	created, err := store.CreateStudentNote(ctx, models.StudentNote{StudentID: p.students[0], PublicationNoteID: note.ID, Notes: &remark})
	require.NoError(t, err)

	remark = "changed by caller after create"
	got, err := store.GetStudentNote(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "issued with cover", *got.Notes)

	*got.Notes = "changed through a returned value"
	*created.Notes = "changed through the created value"
	again, err := store.GetStudentNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued with cover", *again.Notes)

	listed, err := store.ListStudentNotesByStudent(ctx, p.students[0])
	require.NoError(t, err)
	require.Len(t, listed, 1)
	*listed[0].Notes = "changed through a listed value"

	schedule := "Mon 10:00"
	class, err := store.CreateClass(ctx, models.Class{Name: "Math", Grade: "10", TeacherID: p.teachers[0], Schedule: &schedule})
	require.NoError(t, err)
	schedule = "Fri 23:00"
	*class.Schedule = "Sat 07:00"
	stored, err := store.GetClass(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mon 10:00", *stored.Schedule)

	again, err = store.GetStudentNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued with cover", *again.Notes)
}
