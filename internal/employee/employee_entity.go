package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Department  string    `gorm:"type:varchar(80);not null"`
	JoiningDate time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
