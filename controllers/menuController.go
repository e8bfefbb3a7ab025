package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/models"
)

// GetMenu serves the compiled-in catalog.
func GetMenu(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": models.Catalog})
}

func GetMenuItem(ctx *gin.Context) {
	item, ok := models.FindMenuItem(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"item": item})
}
