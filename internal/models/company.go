package models

import (
	"time"
)

// Company represents an organization owning stories, sprints and teams.
// The company code is the prefix used in generated story identifiers.
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Code      string    `json:"code" gorm:"unique;not null"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Company Model
func (Company) TableName() string {
	return "companies"
}
