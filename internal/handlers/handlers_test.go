package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"taskhive-api/internal/auth"
	"taskhive-api/internal/database"
	"taskhive-api/internal/middleware"
	"taskhive-api/internal/models"
	"taskhive-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// resetTestDB swaps in a fresh in-memory database with the default seeds.
func resetTestDB(t *testing.T) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
}

// newTestRouter resets the database and returns a router with the JWT
// middleware installed.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	resetTestDB(t)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(models.User{
		ID: 1, Email: "root", Role: models.RoleAdmin, CompanyID: 1,
	})
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(models.User{
		ID: 2, Email: "bob@taskhive.com", Role: models.RoleUser, CompanyID: 1,
	})
	require.NoError(t, err)
	return token
}

// doJSON performs an authenticated JSON request against the router.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
