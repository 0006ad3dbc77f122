package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func parseDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}

type StudentHandler struct {
	log *zap.Logger
}

func NewStudentHandler(log *zap.Logger) *StudentHandler {
	return &StudentHandler{log: log}
}

type createStudentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Career    string `json:"career" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"`
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthDate, expected YYYY-MM-DD"})
		return
	}

	student := &models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Career:    req.Career,
		Gender:    req.Gender,
		BirthDate: birthDate,
	}
	if err := repository.CreateStudent(c.Request.Context(), student); err != nil {
		h.log.Error("Failed to create student", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	student, err := repository.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		h.log.Error("Failed to load student", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load student"})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) List(c *gin.Context) {
	list, err := repository.ListStudents(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list students", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}
	if list == nil {
		list = []models.Student{}
	}

	c.JSON(http.StatusOK, list)
}
