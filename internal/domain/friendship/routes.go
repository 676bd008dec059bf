package friendship

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	f := rg.Group("/friends")
	{
		f.GET("", h.ListFriends)
		f.GET("/requests", h.ListRequests)
		f.POST("/requests/:id/accept", h.Accept)
		f.POST("/requests/:id/decline", h.Decline)
		f.GET("/:userId", h.FriendDetail)
		f.POST("/:userId", h.SendRequest)
	}
}
