package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

func TestTeacherClassAttendanceScenario(t *testing.T) {
	srv := newTestServer(t)
	cookie := srv.login("t1", "teacher123")

	rec, env := srv.do(http.MethodPost, "/classes", map[string]interface{}{"name": "Biologi 10", "grade": "10", "schedule": "Sabtu 08:00"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	class := decode[models.Class](t, env)

	rec, env = srv.do(http.MethodPost, "/attendance", map[string]interface{}{
		"studentId": 1, "classId": class.ID, "date": "2024-09-02", "status": "present",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	marked := decode[models.Attendance](t, env)
	assert.Equal(t, models.AttendanceStatusPresent, marked.Status)

	rec, env = srv.do(http.MethodGet, "/attendance?classId="+itoa(class.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decode[[]models.Attendance](t, env)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].StudentID)
	assert.Equal(t, "2024-09-02", records[0].Date.String())

	for _, status := range []string{"late", "absent", "absent", "present"} {
		rec, env = srv.do(http.MethodPatch, "/attendance/"+itoa(marked.ID), map[string]string{"status": status}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, models.AttendanceStatus(status), decode[models.Attendance](t, env).Status)
	}
}

func TestAttendanceRejectsUnknownStatus(t *testing.T) {
	srv := newTestServer(t)
	rec, _ := srv.do(http.MethodPost, "/attendance", map[string]interface{}{
		"studentId": 1, "classId": 1, "date": "2024-09-02", "status": "sick",
	}, srv.login("t1", "teacher123"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOtherTeacherCannotMarkAttendance(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := srv.do(http.MethodPost, "/users", map[string]interface{}{
		"username": "t2", "password": "teacher456", "fullName": "Sari Dewi", "email": "sari@bimbel.local", "role": "teacher",
	}, srv.login("admin", "admin123"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = srv.do(http.MethodPost, "/attendance", map[string]interface{}{
		"studentId": 1, "classId": 1, "date": "2024-09-02", "status": "present",
	}, srv.login("t2", "teacher456"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentSeesOnlyOwnAttendance(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("t1", "teacher123")
	for _, studentID := range []int64{1, 2} {
		rec, _ := srv.do(http.MethodPost, "/attendance", map[string]interface{}{
			"studentId": studentID, "classId": 1, "date": "2024-09-03", "status": "late",
		}, teacher)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	student := srv.login("s1", "student123")
	rec, env := srv.do(http.MethodGet, "/attendance?studentId=2", nil, student)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decode[[]models.Attendance](t, env)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, int64(1), r.StudentID)
	}

	rec, _ = srv.do(http.MethodPost, "/attendance", map[string]interface{}{
		"studentId": 1, "classId": 1, "date": "2024-09-03", "status": "present",
	}, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceIsKeyedByStudentProfile(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("t1", "teacher123")

	// s1 logs in as user 3 but owns profile 1.
	rec, env := srv.do(http.MethodGet, "/attendance?studentId=1", nil, teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	byProfile := decode[[]models.Attendance](t, env)
	require.Len(t, byProfile, 1)

	rec, env = srv.do(http.MethodGet, "/attendance?studentId=3", nil, teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Attendance](t, env))

	owner, err := srv.store.GetStudent(context.Background(), byProfile[0].StudentID)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, int64(3), owner.UserID)

	rec, env = srv.do(http.MethodPost, "/attendance", map[string]interface{}{
		"studentId": 3, "classId": 1, "date": "2024-09-02", "status": "present",
	}, teacher)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "studentId must reference a student profile", env.Error.Message)
}

func TestStudentGetsOnlyOwnAttendanceRecord(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("t1", "teacher123")

	rec, env := srv.do(http.MethodGet, "/attendance?studentId=2", nil, teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	theirs := decode[[]models.Attendance](t, env)
	require.NotEmpty(t, theirs)

	student := srv.login("s1", "student123")
	rec, env = srv.do(http.MethodGet, "/attendance", nil, student)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]models.Attendance](t, env)
	require.Len(t, mine, 1)

	rec, _ = srv.do(http.MethodGet, "/attendance/"+itoa(mine[0].ID), nil, student)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = srv.do(http.MethodGet, "/attendance/"+itoa(theirs[0].ID), nil, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentWithoutProfileOwnsNothing(t *testing.T) {
	srv := newTestServer(t)
	hash, err := password.Bcrypt{Cost: bcrypt.MinCost}.Hash("student123")
	require.NoError(t, err)
	_, err = srv.store.CreateUser(context.Background(), models.User{Username: "s9", Password: hash, FullName: "Tanpa Profil", Email: "s9@bimbel.local", Role: models.RoleStudent})
	require.NoError(t, err)

	cookie := srv.login("s9", "student123")
	rec, env := srv.do(http.MethodGet, "/attendance", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Attendance](t, env))

	rec, env = srv.do(http.MethodGet, "/installments", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Installment](t, env))

	rec, _ = srv.do(http.MethodGet, "/attendance/1", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
