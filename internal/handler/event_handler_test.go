package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
)

func TestCreateAndListEvents(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("t1", "teacher123")

	rec, _ := srv.do(http.MethodPost, "/events", map[string]interface{}{"title": "Try Out", "date": "2099-01-10", "time": "25:00"}, teacher)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := srv.do(http.MethodPost, "/events", map[string]interface{}{"title": "Try Out", "date": "2099-01-10", "time": "08:30", "targetGrades": "10,11"}, teacher)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Event](t, env)

	student := srv.login("s1", "student123")
	rec, env = srv.do(http.MethodGet, "/events?from=2099-01-01", nil, student)
	require.Equal(t, http.StatusOK, rec.Code)
	upcoming := decode[[]models.Event](t, env)
	require.Len(t, upcoming, 1)
	assert.Equal(t, created.ID, upcoming[0].ID)

	rec, _ = srv.do(http.MethodGet, "/events?from=tomorrow", nil, student)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(http.MethodPost, "/events", map[string]interface{}{"title": "Libur", "date": "2099-02-01"}, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
