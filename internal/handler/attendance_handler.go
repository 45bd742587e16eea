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

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service  *service.AttendanceService
	classes  *service.ClassService
	profiles StudentProfiles
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService, classes *service.ClassService, profiles StudentProfiles) *AttendanceHandler {
	return &AttendanceHandler{service: svc, classes: classes, profiles: profiles}
}

// List godoc
// @Summary List attendance
// @Description Filter by class (staff) or by student. Students only see their own records.
// @Tags Attendance
// @Produce json
// @Param classId query int false "Class ID"
// @Param studentId query int false "Student profile ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	classID, ok := queryID(c, "classId")
	if !ok {
		return
	}
	studentID, ok := queryID(c, "studentId")
	if !ok {
		return
	}
	if user.Role == models.RoleStudent {
		own, ok := ownStudentID(c, h.profiles, user)
		if !ok {
			return
		}
		if own == 0 {
			response.List(c, []models.Attendance{})
			return
		}
		studentID, classID = own, 0
	}

	var (
		records []models.Attendance
		err     error
	)
	switch {
	case studentID > 0:
		records, err = h.service.ListByStudent(c.Request.Context(), studentID)
	case classID > 0:
		if _, ok := managedClass(c, h.classes, classID); !ok {
			return
		}
		records, err = h.service.ListByClass(c.Request.Context(), classID)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "classId or studentId is required"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records)
}

// Get godoc
// @Summary Get attendance record
// @Tags Attendance
// @Produce json
// @Param id path int true "Attendance ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ownsStudentRecord(c, h.profiles, currentUser(c), record.StudentID) {
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Mark godoc
// @Summary Mark attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	if req.ClassID > 0 {
		if _, ok := managedClass(c, h.classes, req.ClassID); !ok {
			return
		}
	}
	record, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// UpdateStatus godoc
// @Summary Change attendance status
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path int true "Attendance ID"
// @Param payload body dto.UpdateAttendanceRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [patch]
func (h *AttendanceHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance status") {
		return
	}
	existing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if _, ok := managedClass(c, h.classes, existing.ClassID); !ok {
		return
	}
	record, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}
