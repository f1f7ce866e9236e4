package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	propertyapp "github.com/propmanager/backend/internal/application/property"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// ListPropertiesQuery holds the listing filters
type ListPropertiesQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
	Type     string `form:"type" binding:"omitempty,oneof=apartment house condo townhouse commercial"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at name rent"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreatePropertyRequest represents a request to create a property
//
//	@Description	Request body for creating a property
type CreatePropertyRequest struct {
	Name      string          `json:"name" binding:"required,max=200" example:"Maple Court 4B"`
	Address   string          `json:"address" binding:"required,max=500" example:"12 Maple Court, Springfield"`
	Type      string          `json:"type" binding:"required,oneof=apartment house condo townhouse commercial" example:"apartment"`
	Units     int             `json:"units" binding:"min=0" example:"1"`
	Bedrooms  int             `json:"bedrooms" binding:"min=0" example:"2"`
	Bathrooms int             `json:"bathrooms" binding:"min=0" example:"1"`
	Rent      decimal.Decimal `json:"rent" swaggertype:"string" example:"1450.00"`
}

// UpdatePropertyRequest represents a partial property update
type UpdatePropertyRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=200"`
	Address   *string          `json:"address" binding:"omitempty,max=500"`
	Type      *string          `json:"type" binding:"omitempty,oneof=apartment house condo townhouse commercial"`
	Units     *int             `json:"units" binding:"omitempty,min=0"`
	Bedrooms  *int             `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms *int             `json:"bathrooms" binding:"omitempty,min=0"`
	Rent      *decimal.Decimal `json:"rent" swaggertype:"string"`
	Status    *string          `json:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
}

// List godoc
//
//	@Summary		List properties
//	@Tags			properties
//	@Produce		json
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Param			search		query		string	false	"Name or address contains"
//	@Param			status		query		string	false	"vacant, occupied or maintenance"
//	@Param			type		query		string	false	"Property type"
//	@Success		200			{object}	dto.Response{data=[]propertyapp.PropertyInfo,meta=dto.Meta}
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var q ListPropertiesQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.propertyService.List(c.Request.Context(), propertyapp.ListPropertiesInput{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		Status:   q.Status,
		Type:     q.Type,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
//
//	@Summary		Get a property
//	@Tags			properties
//	@Produce		json
//	@Param			id	path		string	true	"Property ID"
//	@Success		200	{object}	dto.Response{data=propertyapp.PropertyInfo}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "property")
	if !ok {
		return
	}

	prop, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// Create godoc
//
//	@Summary		Create a property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreatePropertyRequest	true	"Property"
//	@Success		201		{object}	dto.Response{data=propertyapp.PropertyInfo}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		403		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	prop, err := h.propertyService.Create(c.Request.Context(), propertyapp.CreatePropertyInput{
		Name:      req.Name,
		Address:   req.Address,
		Type:      req.Type,
		Units:     req.Units,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Rent:      req.Rent,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, prop)
}

// Update godoc
//
//	@Summary		Update a property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Property ID"
//	@Param			request	body		UpdatePropertyRequest	true	"Fields to change"
//	@Success		200		{object}	dto.Response{data=propertyapp.PropertyInfo}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "property")
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	prop, err := h.propertyService.Update(c.Request.Context(), id, propertyapp.UpdatePropertyInput{
		Name:      req.Name,
		Address:   req.Address,
		Type:      req.Type,
		Units:     req.Units,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Rent:      req.Rent,
		Status:    req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// Delete godoc
//
//	@Summary		Delete a property
//	@Description	Occupied properties cannot be deleted
//	@Tags			properties
//	@Param			id	path	string	true	"Property ID"
//	@Success		200	{object}	dto.Response{data=MessageResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		422	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "property")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageResponse{Message: "Property deleted successfully"})
}
