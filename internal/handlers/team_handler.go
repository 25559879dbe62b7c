package handlers

import (
	"errors"
	"net/http"
	"time"

	"taskhive-api/internal/database"
	"taskhive-api/internal/models"
	"taskhive-api/internal/story"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRequest represents the payload for creating or replacing a team
type TeamRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// TeamMembersRequest replaces a team's member list
type TeamMembersRequest struct {
	Members []string `json:"members" binding:"required"`
}

// TeamStats aggregates story counts for a team's members
type TeamStats struct {
	TotalStories      int `json:"totalStories"`
	CompletedStories  int `json:"completedStories"`
	InProgressStories int `json:"inProgressStories"`
	OverdueStories    int `json:"overdueStories"`
}

// TeamResponse is the API shape of a team, with members expanded from the
// stored comma-joined form.
type TeamResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	Stats       TeamStats `json:"stats"`
	CreatedAt   time.Time `json:"createdAt"`
}

func teamResponse(db *gorm.DB, t models.Team, now time.Time) TeamResponse {
	members := story.SplitAssignees(t.Members)
	if members == nil {
		members = []string{}
	}

	memberSet := make(map[string]struct{}, len(members))
	for _, m := range members {
		memberSet[m] = struct{}{}
	}

	// A story counts once per team, even with several members assigned
	stats := TeamStats{}
	var stories []models.Story
	if err := db.Where("company_id = ?", t.CompanyID).Find(&stories).Error; err == nil {
		for _, s := range stories {
			onTeam := false
			for _, a := range story.SplitAssignees(s.AssigneeName) {
				if _, ok := memberSet[a]; ok {
					onTeam = true
					break
				}
			}
			if !onTeam {
				continue
			}
			stats.TotalStories++
			switch story.EffectiveStatus(s, now) {
			case models.StatusCompleted:
				stats.CompletedStories++
			case models.StatusInProgress:
				stats.InProgressStories++
			case models.StatusOverdue:
				stats.OverdueStories++
			}
		}
	}

	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Members:     members,
		Stats:       stats,
		CreatedAt:   t.CreatedAt,
	}
}

// GetTeams handles GET /api/teams
func GetTeams(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	var teams []models.Team
	if err := db.Where("company_id = ?", companyID).Order("id asc").Find(&teams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	now := time.Now()
	resp := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, teamResponse(db, t, now))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTeam handles POST /api/teams
func CreateTeam(c *gin.Context) {
	companyID := requestCompanyID(c)

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := models.Team{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Members:     story.JoinAssignees(req.Members),
	}
	if err := database.GetDB().Create(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, teamResponse(database.GetDB(), t, time.Now()))
}

// UpdateTeam handles PUT /api/teams/:id
func UpdateTeam(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	var t models.Team
	if err := db.Where("company_id = ? AND id = ?", companyID, c.Param("id")).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		}
		return
	}

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t.Name = req.Name
	t.Description = req.Description
	if req.Members != nil {
		t.Members = story.JoinAssignees(req.Members)
	}
	if err := db.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team"})
		return
	}

	c.JSON(http.StatusOK, teamResponse(db, t, time.Now()))
}

// UpdateTeamMembers handles PUT /api/teams/:id/members
func UpdateTeamMembers(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	var t models.Team
	if err := db.Where("company_id = ? AND id = ?", companyID, c.Param("id")).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		}
		return
	}

	var req TeamMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t.Members = story.JoinAssignees(req.Members)
	if err := db.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team members"})
		return
	}

	c.JSON(http.StatusOK, teamResponse(db, t, time.Now()))
}

// DeleteTeam handles DELETE /api/teams/:id
func DeleteTeam(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	var t models.Team
	if err := db.Where("company_id = ? AND id = ?", companyID, c.Param("id")).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		}
		return
	}

	if err := db.Delete(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
		"id":      t.ID,
	})
}
