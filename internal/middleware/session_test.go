package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/session"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

const testCookie = "bimbel_sid"

type fakeAuthenticator struct {
	users map[int64]*models.User
	debug bool
	err   error
}

func (f *fakeAuthenticator) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if userID == models.DebugUserID {
		if f.debug {
			return models.DebugUser(), nil
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session user no longer exists")
	}
	return u, nil
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *appErrors.Error       `json:"error"`
}

func newGuardedRouter(t *testing.T, auth *fakeAuthenticator, roles ...models.UserRole) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	kv := session.NewMemoryKV(0)
	t.Cleanup(func() { kv.Close() })
	store := session.NewStore(kv, session.Options{Secret: "0123456789abcdef0123456789abcdef", TTL: time.Hour})

	router := gin.New()
	router.POST("/login/:id", func(c *gin.Context) {
		sess, err := store.Get(c.Request, testCookie)
		require.NoError(t, err)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		require.NoError(t, err)
		session.SetUserID(sess, id)
		require.NoError(t, sess.Save(c.Request, c.Writer))
		c.Status(http.StatusNoContent)
	})

	guarded := router.Group("/", RequireSession(store, testCookie, auth))
	if len(roles) > 0 {
		guarded.Use(RequireRoles(roles...))
	}
	guarded.GET("/me", func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"username": user.Username, "role": user.Role}})
	})
	return router, store
}

func loginCookie(t *testing.T, router *gin.Engine, id string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func get(router *gin.Engine, path string, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(rec, req)
	var body envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	router, _ := newGuardedRouter(t, &fakeAuthenticator{})

	rec, body := get(router, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, body.Error.Code)
}

func TestRequireSessionResolvesUser(t *testing.T) {
	auth := &fakeAuthenticator{users: map[int64]*models.User{2: {ID: 2, Username: "t1", Role: models.RoleTeacher}}}
	router, _ := newGuardedRouter(t, auth)
	cookie := loginCookie(t, router, "2")

	rec, body := get(router, "/me", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", body.Data["username"])
}

func TestRequireSessionRejectsDeletedUser(t *testing.T) {
	auth := &fakeAuthenticator{users: map[int64]*models.User{2: {ID: 2, Username: "t1", Role: models.RoleTeacher}}}
	router, _ := newGuardedRouter(t, auth)
	cookie := loginCookie(t, router, "2")
	delete(auth.users, 2)

	rec, _ := get(router, "/me", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionDebugIdentity(t *testing.T) {
	router, _ := newGuardedRouter(t, &fakeAuthenticator{debug: true})

	// Plain anonymous traffic stays anonymous even with debug identity enabled.
	rec, _ := get(router, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(DebugIdentityHeader, "1")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "debug", body.Data["username"])
}

func TestRequireSessionDebugHeaderNeedsEnabledIdentity(t *testing.T) {
	router, _ := newGuardedRouter(t, &fakeAuthenticator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(DebugIdentityHeader, "1")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionBackendFailure(t *testing.T) {
	auth := &fakeAuthenticator{users: map[int64]*models.User{2: {ID: 2, Username: "t1", Role: models.RoleTeacher}}}
	router, _ := newGuardedRouter(t, auth)
	cookie := loginCookie(t, router, "2")
	auth.err = appErrors.Persistence(assert.AnError, "get_user")

	rec, body := get(router, "/me", cookie)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, appErrors.ErrPersistence.Code, body.Error.Code)
}

func TestRequireRoles(t *testing.T) {
	auth := &fakeAuthenticator{users: map[int64]*models.User{
		2: {ID: 2, Username: "t1", Role: models.RoleTeacher},
		3: {ID: 3, Username: "s1", Role: models.RoleStudent},
	}}
	router, _ := newGuardedRouter(t, auth, models.RoleAdmin, models.RoleTeacher)

	rec, _ := get(router, "/me", loginCookie(t, router, "2"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := get(router, "/me", loginCookie(t, router, "3"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, appErrors.ErrForbidden.Code, body.Error.Code)
}

func TestRBACAllowsSelf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/:id", func(c *gin.Context) {
		c.Set(ContextUserKey, &models.User{ID: 3, Role: models.RoleStudent})
		c.Next()
	}, RBAC(string(models.RoleAdmin), SelfParam), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/3", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/4", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
