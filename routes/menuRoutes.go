package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
)

func MenuRoutes(server *gin.Engine) {
	server.GET("/api/menu", controllers.GetMenu)
	server.GET("/api/menu/:id", controllers.GetMenuItem)
}
