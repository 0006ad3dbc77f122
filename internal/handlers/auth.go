package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/config"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"
	"github.com/Dennisdaviddante/teissi-app/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := repository.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	ttl := time.Duration(config.Conf.Auth.TokenTTLMinutes) * time.Minute
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Conf.Auth.JWTSecret))
	if err != nil {
		h.log.Error("Failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	if !utils.IsValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if !utils.IsComplexPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password does not meet complexity requirements"})
		return
	}
	role := req.Role
	if role == "" {
		role = models.RolePsychologist
	}
	if role != models.RolePsychologist && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := repository.CreateUser(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName, role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.log.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}
