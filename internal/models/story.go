package models

import (
	"time"
)

// StoryType represents the kind of work item (epic, task, bug)
type StoryType string

const (
	TypeEpic StoryType = "Epic"
	TypeTask StoryType = "Task"
	TypeBug  StoryType = "Bug"
)

// StoryStatus represents the stored status of a story.
// StatusOverdue is derived from the deadline at read time and is never
// written to the status column.
type StoryStatus string

const (
	StatusPending    StoryStatus = "Pending"
	StatusInProgress StoryStatus = "In Progress"
	StatusCompleted  StoryStatus = "Completed"
	StatusOverdue    StoryStatus = "Overdue"
)

// StoryPriority represents the priority of a story
type StoryPriority string

const (
	PriorityCritical StoryPriority = "Critical"
	PriorityHigh     StoryPriority = "High"
	PriorityMedium   StoryPriority = "Medium"
	PriorityLow      StoryPriority = "Low"
)

// Story represents a tracked unit of work (epic, task, or bug)
type Story struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	CompanyID          uint          `json:"companyId" gorm:"column:company_id;index;not null"`
	StoryID            string        `json:"storyId" gorm:"column:story_id;uniqueIndex;not null"`
	Title              string        `json:"title" gorm:"not null"`
	Description        string        `json:"description"`
	Type               StoryType     `json:"type" gorm:"not null"`
	Priority           StoryPriority `json:"priority"`
	Status             StoryStatus   `json:"status" gorm:"not null;default:'Pending'"`
	AssigneeName       string        `json:"assigneeName" gorm:"column:assignee_name"`
	StoryPoints        int           `json:"storyPoints" gorm:"column:story_points"`
	Progress           int           `json:"progress" gorm:"default:0"`
	Deadline           string        `json:"deadline"`
	AcceptanceCriteria string        `json:"acceptanceCriteria" gorm:"column:acceptance_criteria"`
	SprintID           *uint         `json:"sprintId" gorm:"column:sprint_id;index"`
	CreatedBy          uint          `json:"createdBy" gorm:"column:created_by"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for Story Model
func (Story) TableName() string {
	return "stories"
}
