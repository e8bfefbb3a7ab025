package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/initializers"
	"github.com/tacodelsol/tacodelsol-api/models"
	"github.com/tacodelsol/tacodelsol-api/pricing"
	"gorm.io/gorm"
)

// findOrder resolves id as an order number when numeric, otherwise as a
// payment intent id.
func findOrder(id string) (models.Order, error) {
	var order models.Order
	query := initializers.DB.Preload("Items")
	if number, err := strconv.Atoi(id); err == nil {
		return order, query.Where("order_number = ?", number).First(&order).Error
	}
	return order, query.Where("payment_intent_id = ?", id).First(&order).Error
}

func GetOrder(ctx *gin.Context) {
	order, err := findOrder(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrder sets status and/or staff notes. Any status from the known set
// is accepted regardless of the current one; the progression shown in the
// dashboard is a UI convention, not a data-layer rule.
func UpdateOrder(ctx *gin.Context) {
	var updateData struct {
		Status     *string `json:"status"`
		StaffNotes *string `json:"staffNotes"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	updates := map[string]any{}
	if updateData.Status != nil {
		status := strings.ToLower(*updateData.Status)
		if !models.ValidStatus(status) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
			return
		}
		updates["status"] = status
	}
	if updateData.StaffNotes != nil {
		updates["staff_notes"] = *updateData.StaffNotes
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Nothing to update")
		return
	}

	order, err := findOrder(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	if err := initializers.DB.Model(&order).Updates(updates).Error; err != nil {
		log.Println("Order update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		return
	}

	if status, ok := updates["status"]; ok {
		order.Status = status.(string)
	}
	if notes, ok := updates["staff_notes"]; ok {
		order.StaffNotes = notes.(string)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetOrders serves the admin dashboard list with pagination and an optional
// status filter.
func GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "25"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("Items")
	countQuery := initializers.DB.Model(&models.Order{})

	if status := ctx.Query("status"); status != "" {
		if !models.ValidStatus(status) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
			return
		}
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	var orders []models.Order
	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	countQuery.Count(&count)
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasPrevPage": page > 1,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

// activeQueueSize counts orders the kitchen is still working on.
func activeQueueSize() (int, error) {
	var count int64
	err := initializers.DB.
		Model(&models.Order{}).
		Where("status IN ?", []string{models.StatusPending, models.StatusPreparing}).
		Count(&count).Error
	return int(count), err
}

// GetQueueEstimate reports the current kitchen queue and the prep-time
// estimate shown at checkout. Falls back to an empty queue if the count
// fails; the estimate is advisory.
func GetQueueEstimate(ctx *gin.Context) {
	settings := loadSettings()

	queueSize, err := activeQueueSize()
	if err != nil {
		log.Println("Queue count error:", err)
		queueSize = 0
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"queueSize":    queueSize,
		"basePrepTime": pricing.BasePrepMinutes(queueSize) + settings.PrepTimeBuffer,
	})
}
