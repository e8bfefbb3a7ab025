package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/initializers"
	"github.com/tacodelsol/tacodelsol-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global connection at a fresh in-memory
// database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Counter{}, &models.BusinessSettings{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	initializers.DB = db
}

func resetPinAttempts() {
	attemptsMu.Lock()
	defer attemptsMu.Unlock()
	attempts = make(map[string]*pinAttempts)
}

// newTestRouter registers the handlers the way main does, without the
// import cycle of pulling in the routes package.
func newTestRouter() *gin.Engine {
	router := gin.New()

	router.POST("/api/checkout", CreateCheckout)
	router.POST("/api/webhooks/stripe", HandleStripeWebhook)

	router.GET("/api/orders/queue", GetQueueEstimate)
	router.GET("/api/orders/:id", GetOrder)
	router.GET("/api/orders", requireAdminForTest(), GetOrders)
	router.GET("/api/orders/stream", requireAdminForTest(), StreamOrders)
	router.PATCH("/api/orders/:id", requireAdminForTest(), UpdateOrder)

	router.POST("/api/admin/auth", AdminLogin)
	router.GET("/api/admin/auth", AdminSession)
	router.DELETE("/api/admin/auth", AdminLogout)

	router.GET("/api/settings", GetSettings)
	router.PATCH("/api/settings", requireAdminForTest(), UpdateSettings)

	router.GET("/api/menu", GetMenu)
	router.GET("/api/menu/:id", GetMenuItem)

	return router
}

// Mirrors middlewares.RequireAdmin, which cannot be imported here.
func requireAdminForTest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(SessionCookieName)
		if err != nil || !ValidateSessionToken(tokenString) {
			ctx.AbortWithStatusJSON(401, gin.H{"message": "Admin session required"})
			return
		}
		ctx.Next()
	}
}

// signWebhookPayload builds a Stripe-Signature header for payload.
func signWebhookPayload(secret string, payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
