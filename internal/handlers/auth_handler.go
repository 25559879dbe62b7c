package handlers

import (
	"errors"
	"net/http"
	"time"

	"taskhive-api/internal/auth"
	"taskhive-api/internal/database"
	"taskhive-api/internal/logging"
	"taskhive-api/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetupPasswordRequest carries a password-setup token and a new password.
type SetupPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// userPayload is the user object embedded in auth responses.
func userPayload(u models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Email,
		"name":      u.Name,
		"role":      u.Role,
		"companyId": u.CompanyID,
	}
}

// Login handles POST /api/auth/login.
// Verifies credentials and returns a bearer token plus the user profile.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username and password are required",
		})
		return
	}

	var user models.User
	err := database.GetDB().Where("email = ?", req.Username).First(&user).Error
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		logging.Event("login_failed").WithField("username", req.Username).Warn("Invalid credentials")
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}
	if user.Status != models.UserActive {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Account is not active",
		})
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate token",
		})
		return
	}

	logging.Event("login").WithField("user_id", user.ID).Info("Login successful")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// ValidateSetupToken handles GET /api/auth/validate-token?token=...
// Resolves a password-setup token to the pending user.
func ValidateSetupToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	user, err := userBySetupToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  userPayload(user),
	})
}

// SetupPassword handles POST /api/auth/setup-password.
// Consumes the setup token, stores the password hash and activates the account.
func SetupPassword(c *gin.Context) {
	var req SetupPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	user, err := userBySetupToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid or expired token",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to set password",
		})
		return
	}

	user.Password = hash
	user.Status = models.UserActive
	user.PasswordSetupToken = ""
	user.PasswordSetupExpiry = nil
	if err := database.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to activate account",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password set successfully",
		"data":    gin.H{"userId": user.ID},
	})
}

func userBySetupToken(token string) (models.User, error) {
	var user models.User
	err := database.GetDB().Where("password_setup_token = ?", token).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	if user.PasswordSetupExpiry == nil || user.PasswordSetupExpiry.Before(time.Now()) {
		return models.User{}, errors.New("setup token expired")
	}
	return user, nil
}
