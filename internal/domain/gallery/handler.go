package gallery

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

func (h *Handler) viewer(c *gin.Context) (Viewer, bool) {
	userID := c.GetInt64("user_id")
	v, err := h.service.BuildViewer(c.Request.Context(), userID, userID != 0)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to resolve viewer")
		return Viewer{}, false
	}
	return v, true
}

func (h *Handler) List(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	photos, err := h.service.List(c.Request.Context(), v, c.Query("category"), limit, offset)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list photos")
		return
	}
	response.Success(c, http.StatusOK, photos)
}

func (h *Handler) ListMine(c *gin.Context) {
	photos, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"))
	if err != nil {
		if errors.Is(err, ErrRoleCannotUpload) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list photos")
		return
	}
	response.Success(c, http.StatusOK, photos)
}

func (h *Handler) ListUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	v, ok := h.viewer(c)
	if !ok {
		return
	}

	photos, err := h.service.ListUser(c.Request.Context(), v, targetID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list photos")
		return
	}
	response.Success(c, http.StatusOK, photos)
}

func (h *Handler) GetDetail(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	v, ok := h.viewer(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), v, photoID)
	if err != nil {
		h.writePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) GetImage(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	v, ok := h.viewer(c)
	if !ok {
		return
	}

	rc, _, err := h.service.OpenImage(c.Request.Context(), v, photoID)
	if err != nil {
		h.writePhotoError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
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
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable image")
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
		f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable image")
			return
		}
		files = append(files, UploadFile{Name: fh.Filename, Data: data})
	}

	photos, err := h.service.Upload(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), req, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleCannotUpload):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrNoImages), errors.Is(err, ErrImageTooLarge):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrCategoryNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, photos)
}

func (h *Handler) Update(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	var req UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	photo, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), photoID, req)
	if err != nil {
		h.writePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, photo)
}

func (h *Handler) Delete(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), photoID); err != nil {
		h.writePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req struct {
		PhotoIDs []int64 `json:"photo_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), req.PhotoIDs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "bulk delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	liked, count, err := h.service.ToggleLike(c.Request.Context(), c.GetInt64("user_id"), photoID)
	if err != nil {
		h.writePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_liked": liked, "like_count": count})
}

func (h *Handler) AddComment(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid photo id")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), c.GetInt64("user_id"), photoID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrParentMismatch):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.writePhotoError(c, err)
		}
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}

	err = h.service.DeleteComment(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), commentID)
	if err != nil {
		h.writePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleCannotUpload):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrCategoryExists):
			response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create category")
		}
		return
	}
	response.Success(c, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid category id")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update category")
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writePhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPhotoNotFound), errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrNotOwner), errors.Is(err, ErrRoleCannotUpload):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}
