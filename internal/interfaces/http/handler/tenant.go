package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tenantapp "github.com/propmanager/backend/internal/application/tenant"
)

// TenantHandler handles tenant management endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *tenantapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *tenantapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenantRequest represents a request to create a tenant account
type CreateTenantRequest struct {
	Email      string     `json:"email" binding:"required,max=254" example:"jane@example.com"`
	FirstName  string     `json:"firstName" binding:"required,max=100" example:"Jane"`
	LastName   string     `json:"lastName" binding:"required,max=100" example:"Doe"`
	Phone      string     `json:"phone" binding:"omitempty,max=50"`
	PropertyID *uuid.UUID `json:"propertyId"`
}

// UpdateTenantRequest represents a partial tenant update
type UpdateTenantRequest struct {
	Email     *string `json:"email" binding:"omitempty,max=254"`
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// AssignPropertyRequest names the property to let to a tenant
type AssignPropertyRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.UserInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenants)
}

// Get godoc
// @Summary      Get a tenant with their properties
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=tenantapp.TenantDetail}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "tenant")
	if !ok {
		return
	}

	detail, err := h.tenantService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// Create godoc
// @Summary      Create a tenant
// @Description  Creates the account with a generated temporary password, returned only in this response
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "Tenant"
// @Success      201 {object} dto.Response{data=tenantapp.CreateTenantResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.tenantService.Create(c.Request.Context(), tenantapp.CreateTenantInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update godoc
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Tenant ID"
// @Param        request body UpdateTenantRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "tenant")
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), id, tenantapp.UpdateTenantInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Delete godoc
// @Summary      Delete a tenant
// @Description  Unassigns the tenant's properties, then removes the account
// @Tags         tenants
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "tenant")
	if !ok {
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Tenant deleted successfully"})
}

// AssignProperty godoc
// @Summary      Assign a property to a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Tenant ID"
// @Param        request body AssignPropertyRequest true "Property"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id}/assign-property [post]
func (h *TenantHandler) AssignProperty(c *gin.Context) {
	id, ok := h.parseID(c, "id", "tenant")
	if !ok {
		return
	}

	var req AssignPropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	prop, err := h.tenantService.AssignProperty(c.Request.Context(), id, req.PropertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prop)
}
