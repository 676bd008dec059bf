package message

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	m := rg.Group("/messages")
	{
		m.GET("", h.Inbox)
		m.GET("/:userId", h.Thread)
		m.POST("/:userId", h.Send)
	}
}
