package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	PaymentIntentId     string      `json:"paymentIntentId" gorm:"uniqueIndex;size:255"`
	OrderNumber         int         `json:"orderNumber" gorm:"uniqueIndex"`
	CustomerName        string      `json:"customerName"`
	CustomerEmail       string      `json:"customerEmail"`
	CustomerPhone       string      `json:"customerPhone"`
	PickupTime          string      `json:"pickupTime"`
	SpecialInstructions string      `json:"specialInstructions"`
	Subtotal            float64     `json:"subtotal"`
	Tax                 float64     `json:"tax"`
	Total               float64     `json:"total"`
	Status              string      `json:"status"`
	StaffNotes          string      `json:"staffNotes"`
	Items               []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID        int            `json:"orderId"`
	MenuItemId     string         `json:"menuItemId"`
	Name           string         `json:"name"`
	Quantity       int            `json:"quantity"`
	BasePrice      float64        `json:"basePrice"`
	Customizations datatypes.JSON `json:"customizations"`
	Notes          string         `json:"notes"`
	LineTotal      float64        `json:"lineTotal"`
}

// Counter backs sequential order numbers. A single row named "orders" is
// incremented inside the order-creation transaction.
type Counter struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int
}
