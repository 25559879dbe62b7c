package models

import (
	"time"
)

// SprintStatus represents the lifecycle status of a sprint
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "Planning"
	SprintActive    SprintStatus = "Active"
	SprintCompleted SprintStatus = "Completed"
)

// Sprint represents a time-boxed container of stories
type Sprint struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	CompanyID   uint         `json:"companyId" gorm:"column:company_id;uniqueIndex:idx_sprints_company_sprint;not null"`
	SprintID    string       `json:"sprintId" gorm:"column:sprint_id;uniqueIndex:idx_sprints_company_sprint;not null"`
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description"`
	StartDate   string       `json:"startDate" gorm:"column:start_date"`
	EndDate     string       `json:"endDate" gorm:"column:end_date"`
	Status      SprintStatus `json:"status" gorm:"not null;default:'Planning'"`
	Progress    int          `json:"progress" gorm:"default:0"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Sprint Model
func (Sprint) TableName() string {
	return "sprints"
}
