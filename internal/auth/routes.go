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
package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all auth-related routes
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, middleware *Middleware) {
	authGroup := router.Group("/auth")
	{
		// Public routes
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)

		// Session-protected routes
		sessionProtected := authGroup.Group("")
		sessionProtected.Use(middleware.RequireSession())
		{
			sessionProtected.GET("/me", handler.Me)
			sessionProtected.GET("/logout", handler.Logout)
		}
	}
}
