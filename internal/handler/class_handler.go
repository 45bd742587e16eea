package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/service"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/response"
)

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Description Admins may filter; teachers see their own classes and students those of their grade
// @Tags Classes
// @Produce json
// @Param grade query string false "Filter by grade"
// @Param teacherId query int false "Filter by teacher"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var (
		classes []models.Class
		err     error
	)
	if user.Role == models.RoleAdmin {
		teacherID, ok := queryID(c, "teacherId")
		if !ok {
			return
		}
		classes, err = h.service.List(c.Request.Context(), dto.ClassFilter{TeacherID: teacherID, Grade: c.Query("grade")})
	} else {
		classes, err = h.service.ListVisible(c.Request.Context(), user)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, classes)
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	class, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Create godoc
// @Summary Create class
// @Description Teachers may only create classes they own
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if !bindJSON(c, &req, "invalid class payload") {
		return
	}
	user := currentUser(c)
	if user != nil && user.Role == models.RoleTeacher {
		if req.TeacherID == 0 {
			req.TeacherID = user.ID
		}
		if req.TeacherID != user.ID {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "teachers can only create their own classes"))
			return
		}
	}

	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// managedClass loads classID and checks that the session user may manage it.
func managedClass(c *gin.Context, classes *service.ClassService, classID int64) (*models.Class, bool) {
	class, err := classes.Get(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if !classes.CanManage(currentUser(c), class) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "class belongs to another teacher"))
		return nil, false
	}
	return class, true
}
