package repository

import (
	"context"
	"errors"

	"github.com/Dennisdaviddante/teissi-app/internal/database"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateStudent(ctx context.Context, s *models.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if err := database.DB.WithContext(ctx).Create(s).Error; err != nil {
		return &StoreError{Op: "create student", Err: err}
	}
	return nil
}

func GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var s models.Student
	err := database.DB.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get student", Err: err}
	}
	return &s, nil
}

func ListStudents(ctx context.Context) ([]models.Student, error) {
	var list []models.Student
	err := database.DB.WithContext(ctx).Order("last_name, first_name").Find(&list).Error
	if err != nil {
		return nil, &StoreError{Op: "list students", Err: err}
	}
	return list, nil
}
