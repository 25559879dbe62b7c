package handlers

import (
	"net/http"
	"time"

	"taskhive-api/internal/database"
	"taskhive-api/internal/logging"
	"taskhive-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateUserRequest represents an invite: the user is created pending and
// completes signup through the password-setup flow.
type CreateUserRequest struct {
	EmployeeID  string          `json:"employeeId"`
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Designation string          `json:"designation"`
	JobRole     string          `json:"jobRole"`
	Role        models.UserRole `json:"role"`
}

// GetUsers handles GET /api/users
func GetUsers(c *gin.Context) {
	companyID := requestCompanyID(c)

	var users []models.User
	if err := database.GetDB().Where("company_id = ?", companyID).Order("id asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser handles POST /api/users
// Creates a pending user with a one-week password-setup token.
func CreateUser(c *gin.Context) {
	companyID := requestCompanyID(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	expiry := time.Now().Add(7 * 24 * time.Hour)
	user := models.User{
		CompanyID:           companyID,
		EmployeeID:          req.EmployeeID,
		Name:                req.Name,
		Email:               req.Email,
		Designation:         req.Designation,
		JobRole:             req.JobRole,
		Role:                role,
		Status:              models.UserPending,
		PasswordSetupToken:  uuid.NewString(),
		PasswordSetupExpiry: &expiry,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	logging.Event("user_invited").WithField("user_id", user.ID).Info("User invited")

	// The setup token is returned directly; a mail integration would
	// deliver it out of band instead.
	c.JSON(http.StatusCreated, gin.H{
		"user":       user,
		"setupToken": user.PasswordSetupToken,
	})
}
