package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/assessment"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentHandler struct {
	log       *zap.Logger
	Interview *models.Interview
}

func NewAssessmentHandler(log *zap.Logger, interview *models.Interview) *AssessmentHandler {
	return &AssessmentHandler{log: log, Interview: interview}
}

// ShowInterview serves the question catalog the submission UI renders.
func (h *AssessmentHandler) ShowInterview(c *gin.Context) {
	c.JSON(http.StatusOK, h.Interview)
}

// Create validates, scores and persists one interview. The interviewing
// psychologist comes from the authenticated user, never from the payload.
func (h *AssessmentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var record models.SuicideAssessment
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment payload"})
		return
	}

	record.ID = uuid.New()
	record.PsychologistID = user.ID
	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}

	if _, err := repository.GetStudentByID(c.Request.Context(), record.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown student"})
			return
		}
		h.log.Error("Failed to load student", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save assessment"})
		return
	}

	// Validation and range checks block the write entirely; nothing
	// partial is ever stored.
	if err := assessment.Validate(&record); err != nil {
		var vErr *assessment.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "missing": vErr.Fields})
			return
		}
		var rErr *assessment.RangeError
		if errors.As(err, &rErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "value out of range",
				"field": rErr.Field,
				"min":   rErr.Min,
				"max":   rErr.Max,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment.Computed(record.IdeationIntensity).Apply(&record)

	if err := repository.CreateAssessment(c.Request.Context(), &record); err != nil {
		h.log.Error("Failed to persist assessment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save assessment"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	record, err := repository.GetAssessmentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		h.log.Error("Failed to load assessment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	if err := assessment.Audit(record); err != nil {
		h.log.Warn("Stored risk level drifted from computed value",
			zap.String("assessment_id", record.ID.String()),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, record)
}

// AuditRecord re-derives the risk level for one stored record and reports
// whether it still matches the persisted value.
func (h *AssessmentHandler) AuditRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	record, err := repository.GetAssessmentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		h.log.Error("Failed to load assessment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	if err := assessment.Audit(record); err != nil {
		var drift *assessment.DriftError
		if errors.As(err, &drift) {
			c.JSON(http.StatusOK, gin.H{
				"consistent": false,
				"stored":     drift.Stored,
				"computed":   drift.Computed,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"consistent": true, "stored": record.RiskLevel, "overridden": record.RiskOverridden})
}

func (h *AssessmentHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	list, err := repository.ListAssessmentsByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.log.Error("Failed to list assessments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assessments"})
		return
	}
	if list == nil {
		list = []models.SuicideAssessment{}
	}

	c.JSON(http.StatusOK, list)
}

type overrideRequest struct {
	RiskLevel models.RiskLevel `json:"riskLevel" binding:"required"`
	Reason    string           `json:"reason" binding:"required"`
}

// OverrideRisk applies an administrative risk-level override. This is the
// only path that can assign EXTREMO.
func (h *AssessmentHandler) OverrideRisk(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "riskLevel and reason are required"})
		return
	}

	assignment, err := assessment.Override(req.RiskLevel, req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := repository.OverrideRiskLevel(c.Request.Context(), id, assignment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		h.log.Error("Failed to override risk level", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to override risk level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "riskLevel": assignment.Level, "riskOverridden": true})
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware, or nil for guests.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
