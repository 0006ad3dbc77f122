package repository

import (
	"context"
	"errors"

	"github.com/Dennisdaviddante/teissi-app/internal/database"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func CreateUser(ctx context.Context, email, password, firstName, lastName, role string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := database.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get user", Err: err}
	}
	return &user, nil
}
