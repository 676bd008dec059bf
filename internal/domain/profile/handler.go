package profile

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/internal/pkg/response"
	"photoshare/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMine(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found")
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(p))
}

func (h *Handler) UpdateMine(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	userID := c.GetInt64("user_id")
	p, err := h.service.Update(c.Request.Context(), userID, c.GetBool("is_staff"), userID, req)
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(p))
}

// UpdateUser lets staff edit any profile, including locked fields.
func (h *Handler) UpdateUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), true, targetID, req)
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(p))
}

// UploadAvatar replaces the caller's avatar from a multipart "avatar" part.
func (h *Handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "avatar file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read avatar")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxAvatarSize+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read avatar")
		return
	}

	p, err := h.service.UpdateAvatar(c.Request.Context(), c.GetInt64("user_id"), data)
	if err != nil {
		if errors.Is(err, ErrAvatarTooLarge) {
			response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", err.Error())
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, h.service.ToResponse(p))
}

// GetAvatar streams a user's avatar image.
func (h *Handler) GetAvatar(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	rc, err := h.service.OpenAvatar(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoAvatar) || errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "avatar not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to open avatar")
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) RequestDobChange(c *gin.Context) {
	var input DobChangeRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.service.RequestDobChange(c.Request.Context(), c.GetInt64("user_id"), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyPending):
			response.Error(c, http.StatusConflict, "ALREADY_PENDING", err.Error())
		default:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, req)
}

func (h *Handler) ListPendingDobRequests(c *gin.Context) {
	reqs, err := h.service.ListPendingDobRequests(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list requests")
		return
	}
	response.Success(c, http.StatusOK, reqs)
}

func (h *Handler) ResolveDobRequest(c *gin.Context) {
	reqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid request id")
		return
	}

	decision := c.Param("decision")
	if decision != "approve" && decision != "decline" {
		response.Error(c, http.StatusBadRequest, "INVALID_DECISION", "decision must be approve or decline")
		return
	}

	req, err := h.service.ResolveDobChange(c.Request.Context(), c.GetInt64("user_id"), reqID, decision == "approve")
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrNotPending):
			response.Error(c, http.StatusConflict, "NOT_PENDING", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to resolve request")
		}
		return
	}
	response.Success(c, http.StatusOK, req)
}

func (h *Handler) writeUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFieldLocked):
		response.Error(c, http.StatusForbidden, "FIELD_LOCKED", err.Error())
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", err.Error())
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
}
