package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentapp "github.com/propmanager/backend/internal/application/payment"
)

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest is a payment an admin has received
type RecordPaymentRequest struct {
	TenantID   uuid.UUID       `json:"tenantId" binding:"required"`
	PropertyID *uuid.UUID      `json:"propertyId"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"1450.00"`
	Month      string          `json:"month" binding:"required,month" example:"2024-03"`
	Method     string          `json:"method" binding:"max=30" example:"bank_transfer"`
	Reference  string          `json:"reference" binding:"max=100"`
}

// SubmitPaymentRequest is a payment reported by the calling tenant
type SubmitPaymentRequest struct {
	PropertyID *uuid.UUID      `json:"propertyId"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"1450.00"`
	Month      string          `json:"month" binding:"required,month" example:"2024-03"`
	Method     string          `json:"method" binding:"max=30"`
	Reference  string          `json:"reference" binding:"max=100"`
}

// ListPaymentsQuery filters payment listings
type ListPaymentsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid rejected"`
	Month    string `form:"month" binding:"omitempty,month"`
	TenantID string `form:"tenantId" binding:"omitempty,uuid"`
}

// Record godoc
// @Summary      Record a payment
// @Description  Admin-recorded payments are stored as paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=paymentapp.PaymentInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.paymentService.Record(c.Request.Context(), paymentapp.RecordPaymentInput{
		TenantID:   req.TenantID,
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Month:      req.Month,
		Method:     req.Method,
		Reference:  req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Submit godoc
// @Summary      Submit a payment
// @Description  A tenant reports a payment; it stays pending until an admin confirms it
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body SubmitPaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=paymentapp.PaymentInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/submit [post]
func (h *PaymentHandler) Submit(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req SubmitPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.paymentService.Submit(c.Request.Context(), caller, paymentapp.SubmitPaymentInput{
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Month:      req.Month,
		Method:     req.Method,
		Reference:  req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List godoc
// @Summary      List payments
// @Description  Tenants see their own payments; admins see all and may filter by tenant
// @Tags         payments
// @Produce      json
// @Param        status   query string false "pending, paid or rejected"
// @Param        month    query string false "YYYY-MM"
// @Param        tenantId query string false "Tenant ID (admin only)"
// @Success      200 {object} dto.Response{data=[]paymentapp.PaymentInfo}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListPaymentsQuery
	if !h.bindQuery(c, &q) {
		return
	}
	input := paymentapp.ListPaymentsInput{Status: q.Status, Month: q.Month}
	if q.TenantID != "" {
		id := uuid.MustParse(q.TenantID)
		input.TenantID = &id
	}

	payments, err := h.paymentService.List(c.Request.Context(), caller, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// History godoc
// @Summary      Payment history of a tenant
// @Tags         payments
// @Produce      json
// @Param        tenantId path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=paymentapp.PaymentHistory}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/history/{tenantId} [get]
func (h *PaymentHandler) History(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}
	tenantID, ok := h.parseID(c, "tenantId", "tenant")
	if !ok {
		return
	}

	history, err := h.paymentService.History(c.Request.Context(), caller, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// Confirm godoc
// @Summary      Confirm a pending payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} dto.Response{data=paymentapp.PaymentInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/confirm [put]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payment")
	if !ok {
		return
	}

	p, err := h.paymentService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Reject godoc
// @Summary      Reject a pending payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} dto.Response{data=paymentapp.PaymentInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/reject [put]
func (h *PaymentHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payment")
	if !ok {
		return
	}

	p, err := h.paymentService.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
