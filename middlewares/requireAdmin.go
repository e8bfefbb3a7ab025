package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/controllers"
)

func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(controllers.SessionCookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin session required"})
			return
		}

		if !controllers.ValidateSessionToken(tokenString) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		ctx.Next()
	}
}
