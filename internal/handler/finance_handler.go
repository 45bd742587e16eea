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

// FinanceHandler exposes installment and teacher payment endpoints.
type FinanceHandler struct {
	service  *service.FinanceService
	profiles StudentProfiles
}

// NewFinanceHandler constructs a finance handler.
func NewFinanceHandler(svc *service.FinanceService, profiles StudentProfiles) *FinanceHandler {
	return &FinanceHandler{service: svc, profiles: profiles}
}

// ListInstallments godoc
// @Summary List installments
// @Description Students only see their own installments
// @Tags Finance
// @Produce json
// @Param studentId query int false "Student profile ID"
// @Param status query string false "pending, overdue or paid"
// @Success 200 {object} response.Envelope
// @Router /installments [get]
func (h *FinanceHandler) ListInstallments(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	studentID, ok := queryID(c, "studentId")
	if !ok {
		return
	}
	filter := dto.InstallmentFilter{StudentID: studentID, Status: c.Query("status")}
	if user.Role == models.RoleStudent {
		own, ok := ownStudentID(c, h.profiles, user)
		if !ok {
			return
		}
		if own == 0 {
			response.List(c, []models.Installment{})
			return
		}
		filter = dto.InstallmentFilter{StudentID: own}
	}

	installments, err := h.service.ListInstallments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, installments)
}

// GetInstallment godoc
// @Summary Get installment
// @Tags Finance
// @Produce json
// @Param id path int true "Installment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /installments/{id} [get]
func (h *FinanceHandler) GetInstallment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	installment, err := h.service.GetInstallment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ownsStudentRecord(c, h.profiles, currentUser(c), installment.StudentID) {
		return
	}
	response.JSON(c, http.StatusOK, installment)
}

// CreateInstallment godoc
// @Summary Schedule an installment
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body dto.CreateInstallmentRequest true "Installment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /installments [post]
func (h *FinanceHandler) CreateInstallment(c *gin.Context) {
	var req dto.CreateInstallmentRequest
	if !bindJSON(c, &req, "invalid installment payload") {
		return
	}
	installment, err := h.service.CreateInstallment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, installment)
}

// UpdateInstallment godoc
// @Summary Change installment status
// @Description Marking paid without paymentDate keeps the stored date
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path int true "Installment ID"
// @Param payload body dto.UpdateInstallmentRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /installments/{id} [patch]
func (h *FinanceHandler) UpdateInstallment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateInstallmentRequest
	if !bindJSON(c, &req, "invalid installment update") {
		return
	}
	installment, err := h.service.UpdateInstallment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, installment)
}

// ListTeacherPayments godoc
// @Summary List teacher payments
// @Description Teachers only see their own payments
// @Tags Finance
// @Produce json
// @Param teacherId query int false "Teacher user ID"
// @Success 200 {object} response.Envelope
// @Router /teacher-payments [get]
func (h *FinanceHandler) ListTeacherPayments(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacherID, ok := queryID(c, "teacherId")
	if !ok {
		return
	}
	if user.Role == models.RoleTeacher {
		teacherID = user.ID
	}

	payments, err := h.service.ListTeacherPayments(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, payments)
}

// GetTeacherPayment godoc
// @Summary Get teacher payment
// @Tags Finance
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher-payments/{id} [get]
func (h *FinanceHandler) GetTeacherPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payment, err := h.service.GetTeacherPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if user := currentUser(c); user == nil || (user.Role == models.RoleTeacher && user.ID != payment.TeacherID) {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// CreateTeacherPayment godoc
// @Summary Record a teacher payment
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher-payments [post]
func (h *FinanceHandler) CreateTeacherPayment(c *gin.Context) {
	var req dto.CreateTeacherPaymentRequest
	if !bindJSON(c, &req, "invalid teacher payment payload") {
		return
	}
	payment, err := h.service.CreateTeacherPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// UpdateTeacherPayment godoc
// @Summary Change teacher payment status
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body dto.UpdateTeacherPaymentRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher-payments/{id} [patch]
func (h *FinanceHandler) UpdateTeacherPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherPaymentRequest
	if !bindJSON(c, &req, "invalid teacher payment update") {
		return
	}
	payment, err := h.service.UpdateTeacherPayment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}
