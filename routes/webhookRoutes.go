package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
)

func WebhookRoutes(server *gin.Engine) {
	server.POST("/api/webhooks/stripe", controllers.HandleStripeWebhook)
}
