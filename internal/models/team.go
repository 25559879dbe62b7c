package models

import (
	"time"
)

// Team represents a group of members working on stories together.
// Members are stored as a comma-joined list of names and exposed as a
// string slice in API responses.
type Team struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyID   uint      `json:"companyId" gorm:"column:company_id;index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Members     string    `json:"-" gorm:"column:members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Team Model
func (Team) TableName() string {
	return "teams"
}
