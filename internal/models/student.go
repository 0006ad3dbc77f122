package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the interviewee. Assessments reference students by id; the
// demographic fields feed the statistics projection.
type Student struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Career    string    `json:"career"`
	Gender    string    `json:"gender"`
	BirthDate time.Time `json:"birthDate"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
