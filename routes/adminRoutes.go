package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/api/admin")
	{
		admin.POST("/auth", controllers.AdminLogin)
		admin.GET("/auth", controllers.AdminSession)
		admin.DELETE("/auth", controllers.AdminLogout)
	}
}
