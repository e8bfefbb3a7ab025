package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
)

func CheckoutRoutes(server *gin.Engine) {
	server.POST("/api/checkout", controllers.CreateCheckout)
}
