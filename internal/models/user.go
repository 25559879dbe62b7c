package models

import (
	"time"
)

// UserRole represents the privilege level of a user
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserStatus represents the account state of a user
type UserStatus string

const (
	UserPending  UserStatus = "PENDING"
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User represents a user in the system
type User struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	CompanyID           uint       `json:"companyId" gorm:"column:company_id;index;not null"`
	EmployeeID          string     `json:"employeeId" gorm:"column:employee_id"`
	Name                string     `json:"name" gorm:"not null"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-"`
	Designation         string     `json:"designation"`
	JobRole             string     `json:"jobRole" gorm:"column:job_role"`
	TeamID              *uint      `json:"teamId" gorm:"column:team_id"`
	Role                UserRole   `json:"role" gorm:"not null;default:'user'"`
	Status              UserStatus `json:"status" gorm:"not null;default:'PENDING'"`
	PasswordSetupToken  string     `json:"-" gorm:"column:password_setup_token"`
	PasswordSetupExpiry *time.Time `json:"-" gorm:"column:password_setup_expiry"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
