package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"taskhive-api/internal/database"
	"taskhive-api/internal/models"
	"taskhive-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func teamRouter(t *testing.T) *gin.Engine {
	r := newTestRouter(t)
	r.GET("/api/teams", GetTeams)
	r.POST("/api/teams", CreateTeam)
	r.PUT("/api/teams/:id", UpdateTeam)
	r.PUT("/api/teams/:id/members", UpdateTeamMembers)
	r.DELETE("/api/teams/:id", DeleteTeam)
	return r
}

func TestCreateTeam(t *testing.T) {
	r := teamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/teams", adminToken(t), map[string]any{
		"name":        "Platform",
		"description": "Core services",
		"members":     []string{"alice", "bob", "alice"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[TeamResponse](t, w)
	require.Equal(t, "Platform", resp.Name)
	require.Equal(t, []string{"alice", "bob"}, resp.Members)
	require.Equal(t, 0, resp.Stats.TotalStories)
}

func TestGetTeams_Stats(t *testing.T) {
	r := teamRouter(t)
	db := database.GetDB()

	team := models.Team{CompanyID: 1, Name: "Platform", Members: "alice, bob"}
	require.NoError(t, db.Create(&team).Error)

	_, err := testutil.SeedStory(db, "EMP-T2001", func(s *models.Story) {
		s.AssigneeName = "alice"
		s.Status = models.StatusCompleted
		s.Progress = 100
	})
	require.NoError(t, err)
	// Assigned to both members but counts once
	_, err = testutil.SeedStory(db, "EMP-T2002", func(s *models.Story) {
		s.AssigneeName = "alice, bob"
		s.Status = models.StatusInProgress
		s.Progress = 50
	})
	require.NoError(t, err)
	// Pending with a past deadline surfaces as overdue
	_, err = testutil.SeedStory(db, "EMP-B3001", func(s *models.Story) {
		s.Type = models.TypeBug
		s.AssigneeName = "bob"
		s.Deadline = "2020-01-01"
	})
	require.NoError(t, err)
	// Not on the team at all
	_, err = testutil.SeedStory(db, "EMP-T2003", func(s *models.Story) {
		s.AssigneeName = "carol"
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/teams", userToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	teams := decode[[]TeamResponse](t, w)
	require.Len(t, teams, 1)
	stats := teams[0].Stats
	require.Equal(t, 3, stats.TotalStories)
	require.Equal(t, 1, stats.CompletedStories)
	require.Equal(t, 1, stats.InProgressStories)
	require.Equal(t, 1, stats.OverdueStories)
}

func TestUpdateTeamMembers_Replaces(t *testing.T) {
	r := teamRouter(t)
	db := database.GetDB()

	team := models.Team{CompanyID: 1, Name: "Platform", Members: "alice, bob"}
	require.NoError(t, db.Create(&team).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/teams/%d/members", team.ID), adminToken(t), map[string]any{
		"members": []string{"carol"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"carol"}, decode[TeamResponse](t, w).Members)
}

func TestUpdateTeam(t *testing.T) {
	r := teamRouter(t)
	db := database.GetDB()

	team := models.Team{CompanyID: 1, Name: "Platform", Members: "alice"}
	require.NoError(t, db.Create(&team).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/teams/%d", team.ID), adminToken(t), map[string]any{
		"name":        "Platform Engineering",
		"description": "Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[TeamResponse](t, w)
	require.Equal(t, "Platform Engineering", resp.Name)
	// Members untouched when the payload omits them
	require.Equal(t, []string{"alice"}, resp.Members)
}

func TestDeleteTeam(t *testing.T) {
	r := teamRouter(t)
	db := database.GetDB()

	team := models.Team{CompanyID: 1, Name: "Platform"}
	require.NoError(t, db.Create(&team).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/teams/%d", team.ID), adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/teams/%d", team.ID), adminToken(t), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
