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

// TestResultHandler exposes test result endpoints.
type TestResultHandler struct {
	service  *service.TestResultService
	classes  *service.ClassService
	profiles StudentProfiles
}

// NewTestResultHandler constructs a test result handler.
func NewTestResultHandler(svc *service.TestResultService, classes *service.ClassService, profiles StudentProfiles) *TestResultHandler {
	return &TestResultHandler{service: svc, classes: classes, profiles: profiles}
}

// List godoc
// @Summary List test results
// @Description Filter by class (staff) or by student. Students only see their own results.
// @Tags TestResults
// @Produce json
// @Param classId query int false "Class ID"
// @Param studentId query int false "Student profile ID"
// @Success 200 {object} response.Envelope
// @Router /test-results [get]
func (h *TestResultHandler) List(c *gin.Context) {
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
			response.List(c, []models.TestResult{})
			return
		}
		studentID, classID = own, 0
	}

	var (
		results []models.TestResult
		err     error
	)
	switch {
	case studentID > 0:
		results, err = h.service.ListByStudent(c.Request.Context(), studentID)
	case classID > 0:
		if _, ok := managedClass(c, h.classes, classID); !ok {
			return
		}
		results, err = h.service.ListByClass(c.Request.Context(), classID)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "classId or studentId is required"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, results)
}

// Get godoc
// @Summary Get test result
// @Tags TestResults
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /test-results/{id} [get]
func (h *TestResultHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ownsStudentRecord(c, h.profiles, currentUser(c), result.StudentID) {
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create godoc
// @Summary Record a test result
// @Tags TestResults
// @Accept json
// @Produce json
// @Param payload body dto.CreateTestResultRequest true "Result payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /test-results [post]
func (h *TestResultHandler) Create(c *gin.Context) {
	var req dto.CreateTestResultRequest
	if !bindJSON(c, &req, "invalid test result payload") {
		return
	}
	if req.ClassID > 0 {
		if _, ok := managedClass(c, h.classes, req.ClassID); !ok {
			return
		}
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// CreateForClass godoc
// @Summary Record one test for several students
// @Description Rows saved before a failure stay saved; the error reports how many were written
// @Tags TestResults
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassResultsRequest true "Class results payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /test-results/class [post]
func (h *TestResultHandler) CreateForClass(c *gin.Context) {
	var req dto.CreateClassResultsRequest
	if !bindJSON(c, &req, "invalid class results payload") {
		return
	}
	if req.ClassID > 0 {
		if _, ok := managedClass(c, h.classes, req.ClassID); !ok {
			return
		}
	}
	results, err := h.service.CreateForClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, results, map[string]interface{}{"count": len(results)})
}

// Update godoc
// @Summary Update score and status
// @Tags TestResults
// @Accept json
// @Produce json
// @Param id path int true "Result ID"
// @Param payload body dto.UpdateTestResultRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /test-results/{id} [put]
func (h *TestResultHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTestResultRequest
	if !bindJSON(c, &req, "invalid test result update") {
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
	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
