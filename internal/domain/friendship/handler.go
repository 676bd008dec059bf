package friendship

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/internal/domain/profile"
	"photoshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SendRequest(c *gin.Context) {
	toUserID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	req, err := h.service.SendRequest(c.Request.Context(), c.GetInt64("user_id"), toUserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRequest), errors.Is(err, ErrVisitorRole):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrAlreadyFriends):
			response.Error(c, http.StatusConflict, "ALREADY_FRIENDS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to send request")
		}
		return
	}
	response.Success(c, http.StatusCreated, req)
}

func (h *Handler) Accept(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid request id")
		return
	}

	if err := h.service.Accept(c.Request.Context(), c.GetInt64("user_id"), requestID); err != nil {
		h.writeActionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": StatusAccepted})
}

func (h *Handler) Decline(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid request id")
		return
	}

	err = h.service.Decline(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), requestID)
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": StatusDeclined})
}

func (h *Handler) ListRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ctx := c.Request.Context()

	incoming, err := h.service.ListIncomingPending(ctx, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list requests")
		return
	}
	outgoing, err := h.service.ListOutgoingPending(ctx, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"incoming": incoming,
		"outgoing": outgoing,
	})
}

func (h *Handler) ListFriends(c *gin.Context) {
	ids, err := h.service.ListFriends(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list friends")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"friend_profile_ids": ids})
}

// FriendDetail exposes a friend's profile; non-friends get a forbidden.
func (h *Handler) FriendDetail(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	p, err := h.service.FriendDetail(c.Request.Context(), c.GetInt64("user_id"), targetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "NOT_FRIENDS", err.Error())
		case errors.Is(err, profile.ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) writeActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotRecipient):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}
