package menu

import (
	"canteen/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	menuGroup := rg.Group("/menu")
	menuGroup.Use(authMiddleware.RequireSession())
	{
		menuGroup.GET("", h.GetDailyMenu)
		menuGroup.GET("/week", h.GetWeeklyMenu)
		menuGroup.POST("/items", h.PostItem)
		menuGroup.PUT("/rotation", h.PutRotation)
	}
}
