package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/service"
)

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/classes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/classes/1", "/classes/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, uint64(3), metrics.Snapshot().RequestsTotal)
}

func TestMetricsMiddlewareLabelsRoleAndOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics, "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	asStudent := func(c *gin.Context) {
		c.Set(ContextUserKey, &models.User{ID: 3, Role: models.RoleStudent})
		c.Next()
	}
	router.GET("/installments", asStudent, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/teacher-payments", asStudent, RequireRoles(models.RoleAdmin, models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/private", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })

	for _, path := range []string{"/health", "/installments", "/teacher-payments", "/private"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(3), snap.RequestsTotal)
	assert.Equal(t, uint64(2), snap.AccessDenied)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_by_role_total{outcome="allowed",role="student"} 1`))
	assert.True(t, strings.Contains(body, `http_requests_by_role_total{outcome="forbidden",role="student"} 1`))
	assert.True(t, strings.Contains(body, `http_requests_by_role_total{outcome="unauthenticated",role="anonymous"} 1`))
	assert.False(t, strings.Contains(body, `path="/health"`))
}

func TestMetricsMiddlewareWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
