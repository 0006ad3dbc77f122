package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dennisdaviddante/teissi-app/internal/config"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLoaderMiddleware validates the bearer token and loads the user it
// names into the context. An invalid or absent token leaves the request a
// guest; route groups decide whether guests may pass. Loading from the
// database on every request means deleted accounts lose access immediately
// even with a live token.
func UserLoaderMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(config.Conf.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		subject, err := claims.GetSubject()
		if err != nil {
			c.Next()
			return
		}
		userID, err := uuid.Parse(subject)
		if err != nil {
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			var storeErr *repository.StoreError
			if errors.As(err, &storeErr) {
				log.Error("Failed to load user for token", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, falling
// back to the x-token header older clients still send.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.GetHeader("x-token")
}

// AuthRequired rejects requests that did not resolve to a valid user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// AdminRequired additionally demands the admin role. Statistics and risk
// overrides are admin-only surfaces.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user, ok := v.(*models.User)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
