package controllers

import (
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookieName carries the admin session JWT.
	SessionCookieName = "tds_admin_session"

	sessionLifetime = 24 * time.Hour

	maxPinAttempts = 5
	attemptWindow  = 15 * time.Minute

	msgInvalidInput        = "invalid input"
	msgInvalidPin          = "invalid PIN"
	msgTooManyAttempts     = "too many attempts, try again later"
	msgInternalServerError = "Internal server error"
	msgNotAuthenticated    = "not authenticated"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

type pinAttempts struct {
	count   int
	resetAt time.Time
}

// Process-local rate limiter for PIN attempts. Not shared across instances;
// acceptable for a single-tenant deployment.
var (
	attemptsMu sync.Mutex
	attempts   = make(map[string]*pinAttempts)
)

// registerPinAttempt records a failed attempt for ip.
func registerPinAttempt(ip string) {
	attemptsMu.Lock()
	defer attemptsMu.Unlock()

	entry, ok := attempts[ip]
	if !ok || time.Now().After(entry.resetAt) {
		entry = &pinAttempts{resetAt: time.Now().Add(attemptWindow)}
		attempts[ip] = entry
	}
	entry.count++
}

func pinAttemptsExceeded(ip string) bool {
	attemptsMu.Lock()
	defer attemptsMu.Unlock()

	entry, ok := attempts[ip]
	if !ok || time.Now().After(entry.resetAt) {
		return false
	}
	return entry.count >= maxPinAttempts
}

func clearPinAttempts(ip string) {
	attemptsMu.Lock()
	defer attemptsMu.Unlock()
	delete(attempts, ip)
}

// GenerateSessionToken issues the HS256 session JWT set as the admin cookie.
func GenerateSessionToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(sessionLifetime).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SESSION_SECRET")))
}

// ValidateSessionToken parses and verifies an admin session JWT.
func ValidateSessionToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("SESSION_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}

// AdminLogin exchanges the dashboard PIN for a session cookie.
func AdminLogin(ctx *gin.Context) {
	var loginData struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	ip := ctx.ClientIP()
	if pinAttemptsExceeded(ip) {
		sendErrorResponse(ctx, http.StatusTooManyRequests, msgTooManyAttempts)
		return
	}

	pinHash := os.Getenv("ADMIN_PIN_HASH")
	if pinHash == "" {
		log.Println("ADMIN_PIN_HASH is not set")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(loginData.Pin)); err != nil {
		registerPinAttempt(ip)
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidPin)
		return
	}

	tokenString, err := GenerateSessionToken()
	if err != nil {
		log.Println("Session token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	clearPinAttempts(ip)
	setSessionCookie(ctx, tokenString, int(sessionLifetime.Seconds()))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"authenticated": true})
}

// AdminSession reports whether the caller holds a valid session cookie.
func AdminSession(ctx *gin.Context) {
	tokenString, err := ctx.Cookie(SessionCookieName)
	if err != nil || !ValidateSessionToken(tokenString) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"authenticated": true})
}

// AdminLogout clears the session cookie.
func AdminLogout(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"authenticated": false})
}
