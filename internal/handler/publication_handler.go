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

// PublicationHandler exposes study material stock and lending endpoints.
type PublicationHandler struct {
	service  *service.PublicationService
	profiles StudentProfiles
}

// NewPublicationHandler constructs a publication handler.
func NewPublicationHandler(svc *service.PublicationService, profiles StudentProfiles) *PublicationHandler {
	return &PublicationHandler{service: svc, profiles: profiles}
}

// List godoc
// @Summary List publications
// @Tags Publications
// @Produce json
// @Param grade query string false "Filter by grade"
// @Param lowStock query bool false "Only notes at or below their threshold"
// @Success 200 {object} response.Envelope
// @Router /publications [get]
func (h *PublicationHandler) List(c *gin.Context) {
	notes, err := h.service.List(c.Request.Context(), dto.PublicationFilter{
		Grade:    c.Query("grade"),
		LowStock: c.Query("lowStock") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, notes)
}

// Get godoc
// @Summary Get publication
// @Tags Publications
// @Produce json
// @Param id path int true "Publication ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /publications/{id} [get]
func (h *PublicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	note, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// Create godoc
// @Summary Create publication
// @Tags Publications
// @Accept json
// @Produce json
// @Param payload body dto.CreatePublicationRequest true "Publication payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /publications [post]
func (h *PublicationHandler) Create(c *gin.Context) {
	var req dto.CreatePublicationRequest
	if !bindJSON(c, &req, "invalid publication payload") {
		return
	}
	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Restock godoc
// @Summary Overwrite stock counters
// @Tags Publications
// @Accept json
// @Produce json
// @Param id path int true "Publication ID"
// @Param payload body dto.RestockRequest true "Stock payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /publications/{id}/stock [put]
func (h *PublicationHandler) Restock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if !bindJSON(c, &req, "invalid restock payload") {
		return
	}
	note, err := h.service.Restock(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// ListLendings godoc
// @Summary List lendings
// @Description Students only see their own lendings
// @Tags Publications
// @Produce json
// @Param studentId query int false "Student profile ID"
// @Param noteId query int false "Publication ID"
// @Success 200 {object} response.Envelope
// @Router /lendings [get]
func (h *PublicationHandler) ListLendings(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	studentID, ok := queryID(c, "studentId")
	if !ok {
		return
	}
	noteID, ok := queryID(c, "noteId")
	if !ok {
		return
	}
	filter := dto.LendingFilter{StudentID: studentID, NoteID: noteID}
	if user.Role == models.RoleStudent {
		own, ok := ownStudentID(c, h.profiles, user)
		if !ok {
			return
		}
		if own == 0 {
			response.List(c, []models.StudentNote{})
			return
		}
		filter = dto.LendingFilter{StudentID: own}
	}

	lendings, err := h.service.ListLendings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, lendings)
}

// GetLending godoc
// @Summary Get lending
// @Tags Publications
// @Produce json
// @Param id path int true "Lending ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lendings/{id} [get]
func (h *PublicationHandler) GetLending(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lending, err := h.service.GetLending(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ownsStudentRecord(c, h.profiles, currentUser(c), lending.StudentID) {
		return
	}
	response.JSON(c, http.StatusOK, lending)
}

// Issue godoc
// @Summary Lend a copy to a student
// @Tags Publications
// @Accept json
// @Produce json
// @Param payload body dto.IssueNoteRequest true "Lending payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope "OUT_OF_STOCK"
// @Router /lendings [post]
func (h *PublicationHandler) Issue(c *gin.Context) {
	var req dto.IssueNoteRequest
	if !bindJSON(c, &req, "invalid lending payload") {
		return
	}
	lending, err := h.service.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lending)
}

// Return godoc
// @Summary Mark a lending returned
// @Description Stock is not put back
// @Tags Publications
// @Accept json
// @Produce json
// @Param id path int true "Lending ID"
// @Param payload body dto.ReturnNoteRequest false "Return payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lendings/{id}/return [post]
func (h *PublicationHandler) Return(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReturnNoteRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, "invalid return payload") {
		return
	}
	lending, err := h.service.Return(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lending)
}
