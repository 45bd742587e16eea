package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestEntityRoundTrip(t *testing.T) {
	joined := time.Date(2024, 7, 1, 8, 30, 0, 123000000, time.UTC)
	dob := models.NewDate(2008, time.March, 14)
	paid := models.NewDate(2024, time.August, 2)
	cond := models.NoteConditionGood

	user := models.User{ID: 1, Username: "t1", Password: "hash", FullName: "Teacher One", Email: "t1@example.com", Role: models.RoleTeacher, JoinDate: joined}
	assert.Equal(t, user, UserFromRow(UserToRow(user)))

	student := models.Student{ID: 2, UserID: 3, ParentName: strPtr("Parent"), DateOfBirth: &dob}
	assert.Equal(t, student, StudentFromRow(StudentToRow(student)))

	class := models.Class{ID: 4, Name: "Math", Grade: "10", TeacherID: 1, Schedule: strPtr("Mon 10:00")}
	assert.Equal(t, class, ClassFromRow(ClassToRow(class)))

	attendance := models.Attendance{ID: 5, StudentID: 3, ClassID: 4, Date: models.NewDate(2024, time.July, 3), Status: models.AttendanceStatusLate}
	assert.Equal(t, attendance, AttendanceFromRow(AttendanceToRow(attendance)))

	result := models.TestResult{ID: 6, Name: "Quiz", StudentID: 3, ClassID: 4, Date: models.NewDate(2024, time.July, 4), Score: 87.5, MaxScore: 100, Status: models.TestResultStatusGraded}
	assert.Equal(t, result, TestResultFromRow(TestResultToRow(result)))

	installment := models.Installment{ID: 7, StudentID: 3, Amount: 500000, DueDate: models.NewDate(2024, time.August, 1), PaymentDate: &paid, Status: models.InstallmentStatusPaid}
	assert.Equal(t, installment, InstallmentFromRow(InstallmentToRow(installment)))

	payment := models.TeacherPayment{ID: 8, TeacherID: 1, Amount: 2000000, Month: "2024-07", Description: "July", Status: models.TeacherPaymentStatusPending}
	assert.Equal(t, payment, TeacherPaymentFromRow(TeacherPaymentToRow(payment)))

	event := models.Event{ID: 9, Title: "Tryout", Date: models.NewDate(2024, time.September, 1), Time: strPtr("08:00"), TargetGrades: strPtr("10, 11")}
	assert.Equal(t, event, EventFromRow(EventToRow(event)))

	note := models.PublicationNote{ID: 10, Title: "Algebra", Subject: "Math", Grade: "10", TotalStock: 5, AvailableStock: 3, LowStockThreshold: 5, LastRestocked: joined}
	assert.Equal(t, note, PublicationNoteFromRow(PublicationNoteToRow(note)))

	lending := models.StudentNote{ID: 11, StudentID: 3, PublicationNoteID: 10, DateIssued: models.NewDate(2024, time.July, 5), IsReturned: true, ReturnDate: &paid, Condition: &cond}
	assert.Equal(t, lending, StudentNoteFromRow(StudentNoteToRow(lending)))
}

func TestToRowUsesNativeNames(t *testing.T) {
	row := StudentNoteToRow(models.StudentNote{PublicationNoteID: 42})
	assert.Equal(t, int64(42), row.NoteID)
	assert.Nil(t, row.ReturnDate)
	assert.Nil(t, row.Condition)
}

func TestFromRowNormalisesDates(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	row := AttendanceRow{Date: time.Date(2024, 7, 3, 0, 0, 0, 0, jakarta)}

	got := AttendanceFromRow(row)
	assert.Equal(t, "2024-07-03", got.Date.String())
	assert.Equal(t, time.UTC, got.Date.Location())
}

func TestToNativeRenamesAndDropsUnknownKeys(t *testing.T) {
	row := ToNative(InstallmentFields, map[string]interface{}{
		"status":  models.InstallmentStatusPaid,
		"dueDate": models.NewDate(2024, time.August, 1),
		"bogus":   "ignored",
	})

	require.Len(t, row, 2)
	assert.Equal(t, models.InstallmentStatusPaid, row["status"])
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), row["due_date"])
	_, ok := row["bogus"]
	assert.False(t, ok)
}

func TestToNativeNilDatePointer(t *testing.T) {
	var missing *models.Date
	row := ToNative(InstallmentFields, map[string]interface{}{"paymentDate": missing})

	value, ok := row["payment_date"]
	require.True(t, ok)
	assert.Nil(t, value.(*time.Time))
}

func TestPartialRoundTrip(t *testing.T) {
	partial := map[string]interface{}{
		"availableStock": 4,
		"totalStock":     9,
		"title":          "Geometry",
	}
	assert.Equal(t, partial, ToDomain(PublicationNoteFields, ToNative(PublicationNoteFields, partial)))
}

func TestToDomainDropsUnknownColumns(t *testing.T) {
	got := ToDomain(ClassFields, Row{"teacher_id": int64(1), "extra": true})
	assert.Equal(t, map[string]interface{}{"teacherId": int64(1)}, got)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "grade", "teacher_id", "schedule"}, Columns(ClassFields))
	for _, fs := range []FieldSet{UserFields, StudentFields, AttendanceFields, TestResultFields, InstallmentFields, TeacherPaymentFields, EventFields, PublicationNoteFields, StudentNoteFields} {
		assert.Equal(t, "id", Columns(fs)[0])
	}
}
