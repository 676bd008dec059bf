package share

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts sender-side endpoints; the group must require auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	t := rg.Group("/transfers")
	{
		t.POST("", h.Create)
		t.GET("", h.ListMine)
	}
}

// RegisterPublicRoutes mounts the recipient-facing endpoints. Recipients are
// not members, so these take no session; access is gated by token plus code.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	s := rg.Group("/share")
	{
		s.POST("/auth", h.AuthenticateByEmail)
		s.POST("/resend", h.ResendCodeByEmail)
		s.POST("/:token/auth", h.Authenticate)
		s.POST("/:token/resend", h.ResendCode)
		s.POST("/:token/files/:fileId/download", h.Download)
		s.POST("/:token/finish", h.Finish)
	}
}
