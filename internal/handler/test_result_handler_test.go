package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
)

func TestRecordClassResultsAndGrade(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("t1", "teacher123")

	rec, env := srv.do(http.MethodPost, "/test-results/class", map[string]interface{}{
		"name": "Ulangan 1", "classId": 1, "date": "2024-09-15",
		"scores": []map[string]interface{}{{"studentId": 1, "score": 80}, {"studentId": 2, "score": 65}},
	}, teacher)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	results := decode[[]models.TestResult](t, env)
	require.Len(t, results, 2)
	assert.EqualValues(t, 2, env.Meta["count"])
	assert.Equal(t, models.TestResultStatusPending, results[0].Status)

	rec, env = srv.do(http.MethodPut, "/test-results/"+itoa(results[0].ID), map[string]interface{}{"score": 85, "status": "graded"}, teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.TestResult](t, env)
	assert.Equal(t, 85.0, updated.Score)
	assert.Equal(t, models.TestResultStatusGraded, updated.Status)

	student := srv.login("s1", "student123")
	rec, env = srv.do(http.MethodGet, "/test-results", nil, student)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]models.TestResult](t, env)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, int64(1), r.StudentID)
	}

	rec, _ = srv.do(http.MethodGet, "/test-results/"+itoa(results[1].ID), nil, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = srv.do(http.MethodGet, "/test-results/"+itoa(results[0].ID), nil, student)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTestResultListNeedsFilterForStaff(t *testing.T) {
	srv := newTestServer(t)
	rec, _ := srv.do(http.MethodGet, "/test-results", nil, srv.login("t1", "teacher123"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassResultsRejectEmptyScores(t *testing.T) {
	srv := newTestServer(t)
	rec, _ := srv.do(http.MethodPost, "/test-results/class", map[string]interface{}{
		"name": "Ulangan 2", "classId": 1, "date": "2024-09-20", "scores": []map[string]interface{}{},
	}, srv.login("admin", "admin123"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
