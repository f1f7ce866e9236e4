package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	noticeapp "github.com/propmanager/backend/internal/application/notice"
)

// NoticeHandler handles the notice board
type NoticeHandler struct {
	BaseHandler
	noticeService *noticeapp.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(noticeService *noticeapp.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// CreateNoticeRequest posts a notice
type CreateNoticeRequest struct {
	Title    string `json:"title" binding:"required,max=200" example:"Water shut-off"`
	Message  string `json:"message" binding:"required,max=4000"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
}

// MarkReadResponse reports the outcome of a read marker
type MarkReadResponse struct {
	Message string `json:"message"`
	Marked  bool   `json:"marked"`
}

// Create godoc
// @Summary      Post a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        request body CreateNoticeRequest true "Notice"
// @Success      201 {object} dto.Response{data=noticeapp.NoticeInfo}
// @Security     BearerAuth
// @Router       /notices [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	var req CreateNoticeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	n, err := h.noticeService.Create(c.Request.Context(), userID, noticeapp.CreateNoticeInput{
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, n)
}

// List godoc
// @Summary      List notices
// @Description  Newest first, each flagged with whether the caller has read it
// @Tags         notices
// @Produce      json
// @Success      200 {object} dto.Response{data=[]noticeapp.NoticeInfo}
// @Security     BearerAuth
// @Router       /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	notices, err := h.noticeService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notices)
}

// Delete godoc
// @Summary      Delete a notice
// @Tags         notices
// @Param        id path string true "Notice ID"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notices/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "notice")
	if !ok {
		return
	}

	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Notice deleted successfully"})
}

// MarkRead godoc
// @Summary      Mark a notice as read
// @Tags         notices
// @Param        id path string true "Notice ID"
// @Success      200 {object} dto.Response{data=MarkReadResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notices/{id}/read [post]
func (h *NoticeHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}
	id, ok := h.parseID(c, "id", "notice")
	if !ok {
		return
	}

	marked, err := h.noticeService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := MarkReadResponse{Message: "Notice marked as read", Marked: marked}
	if !marked {
		resp.Message = "Already marked as read"
	}
	h.Success(c, resp)
}

// ReadStatus godoc
// @Summary      IDs of notices the caller has read
// @Tags         notices
// @Success      200 {object} dto.Response{data=[]string}
// @Security     BearerAuth
// @Router       /notices/read-status [get]
func (h *NoticeHandler) ReadStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user ID")
		return
	}

	ids, err := h.noticeService.ReadStatus(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	h.Success(c, ids)
}
