package initializers

import (
	"log"

	"github.com/tacodelsol/tacodelsol-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Counter{}, &models.BusinessSettings{})
	log.Println("Database synced successfully.")
}
