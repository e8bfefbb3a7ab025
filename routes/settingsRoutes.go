package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
	"github.com/tacodelsol/tacodelsol-api/middlewares"
)

func SettingsRoutes(server *gin.Engine) {
	server.GET("/api/settings", controllers.GetSettings)
	server.PATCH("/api/settings", middlewares.RequireAdmin(), controllers.UpdateSettings)
}
