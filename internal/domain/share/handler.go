package share

import (
	"errors"
	"fmt"
	"io"
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

// codeRequest carries the recipient's code in the request body. Codes never
// appear in URLs.
type codeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

type emailAuthRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "multipart form required")
		return
	}

	var files []UploadFile
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable file")
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
		f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable file")
			return
		}
		files = append(files, UploadFile{Name: fh.Filename, Data: data})
	}

	t, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFiles), errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create transfer")
		}
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) ListMine(c *gin.Context) {
	transfers, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list transfers")
		return
	}
	response.Success(c, http.StatusOK, transfers)
}

func (h *Handler) Authenticate(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.AuthenticateByToken(c.Request.Context(), c.Param("token"), req.Code)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) AuthenticateByEmail(c *gin.Context) {
	var req emailAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.AuthenticateByEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) ResendCodeByEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ResendCodeByEmail(c.Request.Context(), req.Email); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) ResendCode(c *gin.Context) {
	if err := h.service.ResendCode(c.Request.Context(), c.Param("token")); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) Download(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid file id")
		return
	}

	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rc, file, err := h.service.Download(c.Request.Context(), c.Param("token"), req.Code, fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		h.writeAuthError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) Finish(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Finish(c.Request.Context(), c.Param("token"), req.Code); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"finished": true})
}

func (h *Handler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrExpired):
		response.Error(c, http.StatusGone, "EXPIRED", err.Error())
	case errors.Is(err, ErrCodeExpired):
		response.Error(c, http.StatusUnauthorized, "CODE_EXPIRED", err.Error())
	case errors.Is(err, ErrCodeMismatch):
		response.Error(c, http.StatusUnauthorized, "CODE_MISMATCH", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}
