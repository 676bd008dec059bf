package gallery

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the endpoints that accept anonymous viewers.
// The group is expected to carry OptionalAuth so signed-in visitors still
// get their full visible set.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/photos", h.List)
	rg.GET("/photos/:id", h.GetDetail)
	rg.GET("/photos/:id/image", h.GetImage)
	rg.GET("/users/:userId/photos", h.ListUser)
	rg.GET("/categories", h.ListCategories)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/photos/mine", h.ListMine)
	rg.POST("/photos", h.Upload)
	rg.PATCH("/photos/:id", h.Update)
	rg.DELETE("/photos/:id", h.Delete)
	rg.POST("/photos/bulk-delete", h.BulkDelete)
	rg.POST("/photos/:id/like", h.ToggleLike)
	rg.POST("/photos/:id/comments", h.AddComment)
	rg.DELETE("/comments/:commentId", h.DeleteComment)
	rg.POST("/categories", h.CreateCategory)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/admin")
	{
		a.PATCH("/categories/:id", h.UpdateCategory)
		a.DELETE("/categories/:id", h.DeleteCategory)
	}
}
