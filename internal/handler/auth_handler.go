package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/service"
	"github.com/noah-isme/bimbel-api/internal/session"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service and the session store.
type AuthHandler struct {
	service    *service.AuthService
	sessions   *session.Store
	cookieName string
	logger     *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sessions *session.Store, cookieName string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, sessions: sessions, cookieName: cookieName, logger: logger}
}

// Login godoc
// @Summary Authenticate user
// @Description Verify username and password and start a cookie session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	sess, err := h.sessions.Get(c.Request, h.cookieName)
	if err != nil {
		response.Error(c, appErrors.Persistence(err, "load session"))
		return
	}
	if err := h.sessions.Rotate(c.Request.Context(), sess); err != nil {
		response.Error(c, appErrors.Persistence(err, "rotate session"))
		return
	}
	session.SetUserID(sess, user.ID)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		response.Error(c, appErrors.Persistence(err, "save session"))
		return
	}

	h.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	response.JSON(c, http.StatusOK, user)
}

// Logout godoc
// @Summary Logout current session
// @Description Delete the server-side session and expire the cookie
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request, h.cookieName)
	if err != nil {
		response.Error(c, appErrors.Persistence(err, "load session"))
		return
	}
	session.Invalidate(sess)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		response.Error(c, appErrors.Persistence(err, "delete session"))
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change password
// @Description Change password for current user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Change password"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), user.ID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
