package handlers

import (
	"net/http"
	"testing"

	"taskhive-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func usersRouter(t *testing.T) *gin.Engine {
	r := newTestRouter(t)
	r.GET("/api/users", GetUsers)
	r.POST("/api/users", CreateUser)
	return r
}

func TestGetUsers_SeededAdmin(t *testing.T) {
	r := usersRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users", adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Users []models.User `json:"users"`
		Count int           `json:"count"`
	}](t, w)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Admin User", resp.Users[0].Name)
}

func TestCreateUser_InviteIsPending(t *testing.T) {
	r := usersRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", adminToken(t), map[string]string{
		"employeeId": "EMP042",
		"name":       "Dana",
		"email":      "dana@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[struct {
		User       models.User `json:"user"`
		SetupToken string      `json:"setupToken"`
	}](t, w)
	require.Equal(t, models.UserPending, resp.User.Status)
	require.Equal(t, models.RoleUser, resp.User.Role)
	require.NotEmpty(t, resp.SetupToken)

	w = doJSON(t, r, http.MethodGet, "/api/users", adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Count int `json:"count"`
	}](t, w)
	require.Equal(t, 2, list.Count)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	r := usersRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", adminToken(t), map[string]string{
		"name":  "Dana",
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
