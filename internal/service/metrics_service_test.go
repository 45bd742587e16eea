package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/classes", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/classes", http.StatusOK, 40*time.Millisecond)
	m.ObserveDBQuery("postgres.list_classes", 4*time.Millisecond)
	m.RecordLogin("success")
	m.RecordLogin("rejected")
	m.RecordLogin("rejected")
	m.ObserveAccess("student", AccessForbidden)
	m.ObserveAccess("anonymous", AccessUnauthenticated)
	m.ObserveAccess("admin", AccessAllowed)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 30.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.DBQueryCount)
	assert.Equal(t, uint64(1), snap.LoginsSucceeded)
	assert.Equal(t, uint64(2), snap.LoginsRejected)
	assert.Equal(t, uint64(2), snap.AccessDenied)
	assert.Positive(t, snap.Goroutines)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveDBQuery("mongo.get_user", time.Millisecond)
	m.RecordSessionsPurged(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `db_query_duration_seconds_count{query="mongo.get_user"} 1`))
	assert.True(t, strings.Contains(body, "sessions_purged_total 3"))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveDBQuery("memory.get_user", time.Millisecond)
	m.RecordLogin("success")
	m.ObserveAccess("student", AccessForbidden)

	assert.Zero(t, m.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
