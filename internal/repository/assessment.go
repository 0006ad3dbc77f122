package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/assessment"
	"github.com/Dennisdaviddante/teissi-app/internal/database"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAssessment persists a validated, scored record. The caller must
// have run assessment.Validate first; nothing partial is ever written.
func CreateAssessment(ctx context.Context, a *models.SuicideAssessment) error {
	if err := database.DB.WithContext(ctx).Create(a).Error; err != nil {
		return &StoreError{Op: "create assessment", Err: err}
	}
	return nil
}

func GetAssessmentByID(ctx context.Context, id uuid.UUID) (*models.SuicideAssessment, error) {
	var a models.SuicideAssessment
	err := database.DB.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get assessment", Err: err}
	}
	return &a, nil
}

func ListAssessmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.SuicideAssessment, error) {
	var list []models.SuicideAssessment
	err := database.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&list).Error
	if err != nil {
		return nil, &StoreError{Op: "list assessments by student", Err: err}
	}
	return list, nil
}

// ListAssessmentsCreatedSince feeds the periodic consistency audit.
func ListAssessmentsCreatedSince(ctx context.Context, since time.Time) ([]models.SuicideAssessment, error) {
	var list []models.SuicideAssessment
	err := database.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&list).Error
	if err != nil {
		return nil, &StoreError{Op: "list assessments for audit", Err: err}
	}
	return list, nil
}

// OverrideRiskLevel applies a manual risk assignment to a stored record.
// This is the only mutation allowed after creation.
func OverrideRiskLevel(ctx context.Context, id uuid.UUID, r assessment.RiskAssignment) error {
	result := database.DB.WithContext(ctx).
		Model(&models.SuicideAssessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"risk_level":      r.Level,
			"risk_overridden": r.Overridden,
			"override_reason": r.Reason,
		})
	if result.Error != nil {
		return &StoreError{Op: "override risk level", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
