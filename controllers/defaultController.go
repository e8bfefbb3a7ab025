package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Taco del Sol ordering API.

The following are the endpoints for this API:

MENU
- GET "/api/menu" - Full menu catalog
- GET "/api/menu/:id" - Single menu item

CHECKOUT
- POST "/api/checkout" - Create a payment intent for the cart
- POST "/api/webhooks/stripe" - Payment gateway webhook

ORDERS
- GET "/api/orders/queue" - Kitchen queue size and prep-time estimate
- GET "/api/orders/:id" - Order by number or payment intent id
- GET "/api/orders" - List orders (admin)
- PATCH "/api/orders/:id" - Update order status / staff notes (admin)
- GET "/api/orders/stream" - Live order feed (admin, SSE)

ADMIN
- POST "/api/admin/auth" - Log in with the dashboard PIN
- GET "/api/admin/auth" - Validate the session cookie
- DELETE "/api/admin/auth" - Log out

SETTINGS
- GET "/api/settings" - Business settings
- PATCH "/api/settings" - Update settings (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
