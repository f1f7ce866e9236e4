package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	calendarapp "github.com/propmanager/backend/internal/application/calendar"
	"github.com/propmanager/backend/internal/domain/identity"
)

// EventHandler handles the property calendar
type EventHandler struct {
	BaseHandler
	calendarService *calendarapp.CalendarService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(calendarService *calendarapp.CalendarService) *EventHandler {
	return &EventHandler{calendarService: calendarService}
}

// EventRequest holds the editable attributes of an event
type EventRequest struct {
	Title       string     `json:"title" binding:"required,max=200" example:"Annual inspection"`
	Property    string     `json:"property" binding:"max=200" example:"Maple Court 4B"`
	PropertyID  *uuid.UUID `json:"propertyId"`
	Type        string     `json:"type" binding:"required,oneof=inspection maintenance viewing meeting lease other" example:"inspection"`
	Date        string     `json:"date" binding:"required,date" example:"2024-05-14"`
	Time        string     `json:"time" binding:"omitempty,clock" example:"09:30"`
	Description string     `json:"description" binding:"max=4000"`
	UserID      *uuid.UUID `json:"userId"`
}

func (r EventRequest) input() calendarapp.EventInput {
	return calendarapp.EventInput{
		Title:       r.Title,
		Property:    r.Property,
		PropertyID:  r.PropertyID,
		Type:        r.Type,
		Date:        r.Date,
		Time:        r.Time,
		Description: r.Description,
		UserID:      r.UserID,
	}
}

// List godoc
//
//	@Summary		List events
//	@Description	Ordered by date then time
//	@Tags			events
//	@Produce		json
//	@Param			from	query		string	false	"Earliest date, YYYY-MM-DD"
//	@Param			to		query		string	false	"Latest date, YYYY-MM-DD"
//	@Success		200		{object}	dto.Response{data=[]calendarapp.EventInfo}
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.calendarService.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Create godoc
//
//	@Summary	Schedule an event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		request	body		EventRequest	true	"Event"
//	@Success	201		{object}	dto.Response{data=calendarapp.EventInfo}
//	@Failure	400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security	BearerAuth
//	@Router		/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	var req EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.calendarService.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// Update godoc
//
//	@Summary	Update an event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Event ID"
//	@Param		request	body		EventRequest	true	"Event"
//	@Success	200		{object}	dto.Response{data=calendarapp.EventInfo}
//	@Failure	404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security	BearerAuth
//	@Router		/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "event")
	if !ok {
		return
	}

	var req EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.calendarService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// Delete godoc
//
//	@Summary	Delete an event
//	@Tags		events
//	@Param		id	path		string	true	"Event ID"
//	@Success	200	{object}	dto.Response{data=MessageResponse}
//	@Security	BearerAuth
//	@Router		/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "event")
	if !ok {
		return
	}

	if err := h.calendarService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Event deleted successfully"})
}

// Confirm godoc
//
//	@Summary		Confirm an event
//	@Description	Admins or the attendee
//	@Tags			events
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	dto.Response{data=calendarapp.EventInfo}
//	@Failure		403	{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		422	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/events/{id}/confirm [put]
func (h *EventHandler) Confirm(c *gin.Context) {
	h.transition(c, h.calendarService.Confirm)
}

// Complete godoc
//
//	@Summary		Complete an event
//	@Description	Admins or the attendee
//	@Tags			events
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	dto.Response{data=calendarapp.EventInfo}
//	@Failure		422	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/events/{id}/complete [put]
func (h *EventHandler) Complete(c *gin.Context) {
	h.transition(c, h.calendarService.Complete)
}

func (h *EventHandler) transition(c *gin.Context, apply func(ctx context.Context, caller identity.Principal, id uuid.UUID) (*calendarapp.EventInfo, error)) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "event")
	if !ok {
		return
	}

	event, err := apply(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}
