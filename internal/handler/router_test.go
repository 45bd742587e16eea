package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
	"github.com/noah-isme/bimbel-api/internal/service"
	"github.com/noah-isme/bimbel-api/internal/session"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

const (
	testPrefix = "/api/v1"
	testCookie = "bimbel_test"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	store   *memory.Store
	metrics *service.MetricsService
}

// newTestServer wires the full router over a seeded memory store. Fixture ids: admin=1,
// t1=2, s1=3, s2=4; student profiles 1 (s1) and 2 (s2); classes 1 and 2 are taught by t1.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := password.Bcrypt{Cost: bcrypt.MinCost}
	store := memory.New()
	require.NoError(t, repository.SeedFixtures(context.Background(), store, hasher.Hash))

	kv := session.NewMemoryKV(0)
	t.Cleanup(func() { kv.Close() })
	sessions := session.NewStore(kv, session.Options{Secret: "0123456789abcdef0123456789abcdef", TTL: time.Hour})

	metrics := service.NewMetricsService()
	authSvc := service.NewAuthService(store, password.NewChain(), nil, nil, service.AuthConfig{}).WithLoginRecorder(metrics)
	classSvc := service.NewClassService(store, store, nil, nil)
	userSvc := service.NewUserService(store, hasher, nil, nil)

	h := Handlers{
		Auth:         NewAuthHandler(authSvc, sessions, testCookie, nil),
		Users:        NewUserHandler(userSvc),
		Classes:      NewClassHandler(classSvc),
		Attendance:   NewAttendanceHandler(service.NewAttendanceService(store, nil, nil), classSvc, userSvc),
		TestResults:  NewTestResultHandler(service.NewTestResultService(store, nil, nil), classSvc, userSvc),
		Finance:      NewFinanceHandler(service.NewFinanceService(store, nil, nil), userSvc),
		Events:       NewEventHandler(service.NewEventService(store, nil, nil)),
		Publications: NewPublicationHandler(service.NewPublicationService(store, nil, nil), userSvc),
		Metrics:      NewMetricsHandler(metrics, map[string]Pinger{"sessions": sessions}),
	}
	router := NewRouter(h, sessions, authSvc, metrics, nil, RouterOptions{
		APIPrefix:     testPrefix,
		CookieName:    testCookie,
		EnableMetrics: true,
	})
	return &testServer{t: t, router: router, store: store, metrics: metrics}
}

func (s *testServer) do(method, path string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, testPrefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *testServer) login(username, plain string) *http.Cookie {
	s.t.Helper()
	rec, _ := s.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": plain}, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	s.t.Fatalf("login for %s set no session cookie", username)
	return nil
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessions":"ok"`)
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodGet, "/classes", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, env.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodGet, "/classes", nil, nil)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
