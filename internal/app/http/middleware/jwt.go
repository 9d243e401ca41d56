package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"vet-clinic-api/config"
	"vet-clinic-api/internal/domain/vets"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// vetKey is the per-request context slot for the authenticated veterinarian.
const vetKey = "vet"

// CurrentVet returns the filtered profile the auth middleware attached to
// this request.
func CurrentVet(c *gin.Context) (vets.Profile, bool) {
	value, exists := c.Get(vetKey)
	if !exists {
		return vets.Profile{}, false
	}
	profile, ok := value.(vets.Profile)
	return profile, ok
}

// SetCurrentVet attaches a profile to the request. Exposed for handler tests
// that bypass the middleware.
func SetCurrentVet(c *gin.Context, profile vets.Profile) {
	c.Set(vetKey, profile)
}

// Auth verifies the bearer token and attaches the caller's profile to the
// request context. Every verification failure yields the same 401 body;
// expired, malformed and wrongly-signed tokens are not distinguished.
func Auth(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	jwtKey := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		vetIDFloat, ok := claims["vet_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		var vet vets.Veterinarian
		if err := db.First(&vet, uint(vetIDFloat)).Error; err != nil || !vet.Status {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		SetCurrentVet(c, vet.AsProfile())
		c.Next()
	}
}
