package profile

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	p := rg.Group("/profile")
	{
		p.GET("/me", h.GetMine)
		p.PATCH("/me", h.UpdateMine)
		p.POST("/me/avatar", h.UploadAvatar)
		p.POST("/dob-requests", h.RequestDobChange)
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:userId/avatar", h.GetAvatar)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	p := rg.Group("/admin")
	{
		p.PATCH("/users/:userId/profile", h.UpdateUser)
		p.GET("/dob-requests", h.ListPendingDobRequests)
		p.POST("/dob-requests/:id/:decision", h.ResolveDobRequest)
	}
}
