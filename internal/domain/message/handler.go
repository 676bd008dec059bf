package message

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sendRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) Send(c *gin.Context) {
	recipientID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	m, err := h.service.Send(c.Request.Context(), c.GetInt64("user_id"), recipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrSelfMessage), errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to send message")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) Thread(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	msgs, err := h.service.Thread(c.Request.Context(), c.GetInt64("user_id"), otherID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load thread")
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) Inbox(c *gin.Context) {
	entries, err := h.service.Inbox(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load inbox")
		return
	}
	response.Success(c, http.StatusOK, entries)
}
