package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/initializers"
	"github.com/tacodelsol/tacodelsol-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// loadSettings returns the single settings row, creating it with defaults on
// first use. Any read error also falls back to defaults so public pages keep
// rendering.
func loadSettings() models.BusinessSettings {
	var settings models.BusinessSettings
	err := initializers.DB.First(&settings).Error
	if err == nil {
		return settings
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if createErr := initializers.DB.Create(&settings).Error; createErr != nil {
			log.Println("Settings create error:", createErr)
		}
		return settings
	}
	log.Println("Settings load error:", err)
	return models.DefaultSettings()
}

func GetSettings(ctx *gin.Context) {
	settings := loadSettings()
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"settings": settings,
		"openNow":  settings.OpenNow(),
	})
}

// Only these keys may be written through PATCH /api/settings.
var settingsAllowList = map[string]bool{
	"address":         true,
	"hours":           true,
	"prepTimeBuffer":  true,
	"taxRate":         true,
	"acceptingOrders": true,
	"pauseMessage":    true,
}

var settingsColumns = map[string]string{
	"address":         "address",
	"hours":           "hours",
	"prepTimeBuffer":  "prep_time_buffer",
	"taxRate":         "tax_rate",
	"acceptingOrders": "accepting_orders",
	"pauseMessage":    "pause_message",
}

// UpdateSettings applies an allow-listed partial update. Keys outside the
// list are rejected so a stale admin client cannot write arbitrary columns.
func UpdateSettings(ctx *gin.Context) {
	var patch map[string]json.RawMessage
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if len(patch) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Nothing to update")
		return
	}

	updates := map[string]any{}
	for key, raw := range patch {
		if !settingsAllowList[key] {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown settings key: "+key)
			return
		}

		switch key {
		case "hours":
			var hours map[string]models.DayHours
			if err := json.Unmarshal(raw, &hours); err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, "Invalid hours value")
				return
			}
			hoursJSON, _ := json.Marshal(hours)
			updates[settingsColumns[key]] = datatypes.JSON(hoursJSON)
		case "prepTimeBuffer":
			var buffer int
			if err := json.Unmarshal(raw, &buffer); err != nil || buffer < 0 {
				sendErrorResponse(ctx, http.StatusBadRequest, "Invalid prep time buffer")
				return
			}
			updates[settingsColumns[key]] = buffer
		case "taxRate":
			var rate float64
			if err := json.Unmarshal(raw, &rate); err != nil || rate < 0 || rate > 1 {
				sendErrorResponse(ctx, http.StatusBadRequest, "Invalid tax rate")
				return
			}
			updates[settingsColumns[key]] = rate
		case "acceptingOrders":
			var accepting bool
			if err := json.Unmarshal(raw, &accepting); err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, "Invalid acceptingOrders value")
				return
			}
			updates[settingsColumns[key]] = accepting
		default:
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+key+" value")
				return
			}
			updates[settingsColumns[key]] = text
		}
	}

	settings := loadSettings()
	if err := initializers.DB.Model(&settings).Updates(updates).Error; err != nil {
		log.Println("Settings update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"settings": loadSettings()})
}
