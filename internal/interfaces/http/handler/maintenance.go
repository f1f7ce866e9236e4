package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	maintenanceapp "github.com/propmanager/backend/internal/application/maintenance"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	maintenanceService *maintenanceapp.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService *maintenanceapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// CreateMaintenanceRequest files a maintenance request
type CreateMaintenanceRequest struct {
	Title       string     `json:"title" binding:"required,max=200" example:"Leaking tap"`
	Description string     `json:"description" binding:"required,max=4000"`
	PropertyID  *uuid.UUID `json:"propertyId"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent" example:"normal"`
}

// UpdateMaintenanceStatusRequest moves a request through its workflow
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed" example:"in-progress"`
}

// Create godoc
// @Summary      File a maintenance request
// @Description  Tenants may only reference a property let to them
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateMaintenanceRequest true "Request"
// @Success      201 {object} dto.Response{data=maintenanceapp.RequestInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateMaintenanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	info, err := h.maintenanceService.Create(c.Request.Context(), caller, maintenanceapp.CreateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		PropertyID:  req.PropertyID,
		Priority:    req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List godoc
// @Summary      List maintenance requests
// @Tags         maintenance
// @Produce      json
// @Param        status query string false "pending, in-progress or completed"
// @Success      200 {object} dto.Response{data=[]maintenanceapp.RequestInfo}
// @Security     BearerAuth
// @Router       /maintenance [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	requests, err := h.maintenanceService.List(c.Request.Context(), caller, c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// Get godoc
// @Summary      Get a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} dto.Response{data=maintenanceapp.RequestInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance/{id} [get]
func (h *MaintenanceHandler) Get(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "request")
	if !ok {
		return
	}

	info, err := h.maintenanceService.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// UpdateStatus godoc
// @Summary      Update maintenance status
// @Description  The requester is notified by message
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Request ID"
// @Param        request body UpdateMaintenanceStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=maintenanceapp.RequestInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance/{id} [put]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "request")
	if !ok {
		return
	}

	var req UpdateMaintenanceStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	info, err := h.maintenanceService.UpdateStatus(c.Request.Context(), caller, id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
