package controllers

import (
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/initializers"
	"github.com/tacodelsol/tacodelsol-api/models"
)

const streamInterval = 5 * time.Second

func activeOrders() ([]models.Order, error) {
	var orders []models.Order
	err := initializers.DB.Preload("Items").
		Where("status IN ?", []string{models.StatusPending, models.StatusPreparing, models.StatusReady}).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

// StreamOrders pushes the active order list to the admin dashboard over SSE:
// once on connect, then every few seconds until the client goes away. The
// dashboard keeps its 60-second list polling as a fallback.
func StreamOrders(ctx *gin.Context) {
	ctx.Writer.Header().Set("Cache-Control", "no-cache")

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	emit := func() bool {
		orders, err := activeOrders()
		if err != nil {
			log.Println("Order stream query error:", err)
			return true
		}
		ctx.SSEvent("orders", gin.H{"orders": orders})
		return true
	}

	emit()
	ctx.Writer.Flush()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case <-ticker.C:
			return emit()
		}
	})
}
