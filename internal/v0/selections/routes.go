//Canteen is the meal-ordering portal backend for Karmic Solutions employees. Daily and weekly meal planning against the on-site canteen menu, with SMS reminders.
//Canteen Copyright (C) 2026 Karmic Solutions
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
package selections

import (
	"canteen/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	planGroup := rg.Group("/plan")
	planGroup.Use(authMiddleware.RequireSession())
	{
		planGroup.GET("/daily", h.GetDaily)
		planGroup.POST("/daily/location", h.PostLocation)
		planGroup.POST("/daily/toggle", h.PostToggle)
		planGroup.POST("/daily/confirm", h.PostConfirm)
		planGroup.POST("/daily/edit", h.PostEdit)
		planGroup.DELETE("/daily", h.DeleteDaily)

		planGroup.GET("/weekly", h.GetWeekly)
		planGroup.POST("/weekly/location", h.PostWeekLocation)
		planGroup.POST("/weekly/toggle", h.PostWeekToggle)
		planGroup.POST("/weekly/submit", h.PostWeekSubmit)
		planGroup.DELETE("/weekly", h.DeleteWeekly)
	}
}
