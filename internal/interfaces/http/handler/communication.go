package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propmanager/backend/internal/application/communication"
)

// CommunicationHandler handles direct messages between users
type CommunicationHandler struct {
	BaseHandler
	messageService *communication.MessageService
}

// NewCommunicationHandler creates a new CommunicationHandler
func NewCommunicationHandler(messageService *communication.MessageService) *CommunicationHandler {
	return &CommunicationHandler{messageService: messageService}
}

// SendMessageRequest is a message to another user
type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" binding:"required"`
	Subject    string    `json:"subject" binding:"max=200"`
	Message    string    `json:"message" binding:"required,max=4000"`
}

// Send godoc
// @Summary      Send a message
// @Tags         communication
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "Message"
// @Success      201 {object} dto.Response{data=communication.MessageInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /communication [post]
func (h *CommunicationHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	var req SendMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), communication.SendMessageInput{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Message:    req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// List godoc
// @Summary      Messages sent or received by the caller
// @Tags         communication
// @Produce      json
// @Success      200 {object} dto.Response{data=[]communication.MessageInfo}
// @Security     BearerAuth
// @Router       /communication [get]
func (h *CommunicationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	msgs, err := h.messageService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msgs)
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Tags         communication
// @Param        id path string true "Message ID"
// @Success      200 {object} dto.Response{data=communication.MessageInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /communication/{id}/read [put]
func (h *CommunicationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}
	id, ok := h.parseID(c, "id", "message")
	if !ok {
		return
	}

	msg, err := h.messageService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}
