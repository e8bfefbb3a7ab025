package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
	"github.com/tacodelsol/tacodelsol-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders")
	{
		orders.GET("/queue", controllers.GetQueueEstimate)
		orders.GET("/:id", controllers.GetOrder)

		orders.GET("", middlewares.RequireAdmin(), controllers.GetOrders)
		orders.GET("/stream", middlewares.RequireAdmin(), controllers.StreamOrders)
		orders.PATCH("/:id", middlewares.RequireAdmin(), controllers.UpdateOrder)
	}
}
