package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"taskhive-api/internal/database"
	"taskhive-api/internal/logging"
	"taskhive-api/internal/middleware"
	"taskhive-api/internal/models"
	"taskhive-api/internal/realtime"
	"taskhive-api/internal/story"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSprintRequest represents the request payload for creating a sprint
type CreateSprintRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Status      models.SprintStatus `json:"status"`
}

// UpdateSprintRequest is a full-record replacement payload for a sprint.
type UpdateSprintRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Status      models.SprintStatus `json:"status"`
	Progress    int                 `json:"progress"`
}

// AddSprintStoryRequest names the story to add to a sprint backlog.
type AddSprintStoryRequest struct {
	StoryID string `json:"storyId" binding:"required"`
}

func findSprint(db *gorm.DB, companyID uint, idParam string) (models.Sprint, error) {
	var sp models.Sprint
	if n, err := strconv.Atoi(idParam); err == nil {
		err := db.Where("company_id = ? AND id = ?", companyID, n).First(&sp).Error
		return sp, err
	}
	err := db.Where("company_id = ? AND sprint_id = ?", companyID, idParam).First(&sp).Error
	return sp, err
}

// sprintBacklog loads the ordered backlog of story ids for a sprint.
func sprintBacklog(db *gorm.DB, sprintID uint) (story.Backlog, []models.Story, error) {
	var stories []models.Story
	if err := db.Where("sprint_id = ?", sprintID).Order("id asc").Find(&stories).Error; err != nil {
		return nil, nil, err
	}
	b := make(story.Backlog, 0, len(stories))
	for _, s := range stories {
		b = append(b, s.StoryID)
	}
	return b, stories, nil
}

// GetSprints handles GET /api/sprints
func GetSprints(c *gin.Context) {
	companyID := requestCompanyID(c)

	var sprints []models.Sprint
	if err := database.GetDB().Where("company_id = ?", companyID).Order("id asc").Find(&sprints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprints"})
		return
	}

	c.JSON(http.StatusOK, sprints)
}

// GetSprintByID handles GET /api/sprints/:id
// Returns the sprint together with its backlog stories.
func GetSprintByID(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	_, stories, err := sprintBacklog(db, sp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint stories"})
		return
	}

	now := time.Now()
	isAdmin := middleware.IsAdmin(c)
	views := make([]StoryView, 0, len(stories))
	for _, s := range stories {
		views = append(views, storyView(s, now, isAdmin))
	}

	c.JSON(http.StatusOK, gin.H{
		"sprint":  sp,
		"stories": views,
	})
}

// GetCurrentSprint handles GET /api/sprints/current
// Returns the active sprint or an empty payload when none is active.
func GetCurrentSprint(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	var sp models.Sprint
	err := db.Where("company_id = ? AND status = ?", companyID, models.SprintActive).First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "No active sprint found. Create a new sprint to get started.",
			"sprint":  nil,
			"stories": []StoryView{},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		return
	}

	_, stories, err := sprintBacklog(db, sp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint stories"})
		return
	}

	now := time.Now()
	isAdmin := middleware.IsAdmin(c)
	views := make([]StoryView, 0, len(stories))
	for _, s := range stories {
		views = append(views, storyView(s, now, isAdmin))
	}

	c.JSON(http.StatusOK, gin.H{
		"sprint":  sp,
		"stories": views,
	})
}

// GetAvailableStories handles GET /api/sprints/:id/available
// Returns stories not in the sprint's backlog, optionally filtered by
// assignee and type.
func GetAvailableStories(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	backlog, _, err := sprintBacklog(db, sp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint stories"})
		return
	}

	var all []models.Story
	if err := db.Where("company_id = ?", companyID).Order("id asc").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}

	var filters []story.Filter
	if assignee := c.Query("assignee"); assignee != "" {
		filters = append(filters, story.ByAssignee(assignee))
	}
	if t := c.Query("type"); t != "" {
		filters = append(filters, story.ByType(models.StoryType(t)))
	}

	available := story.Available(all, backlog, filters...)

	// Stories parked in other sprints are not available either
	out := make([]models.Story, 0, len(available))
	for _, s := range available {
		if s.SprintID == nil {
			out = append(out, s)
		}
	}

	c.JSON(http.StatusOK, out)
}

// CreateSprint handles POST /api/sprints
func CreateSprint(c *gin.Context) {
	companyID := requestCompanyID(c)

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.SprintPlanning
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(&models.Sprint{}).Where("company_id = ?", companyID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sprint"})
		return
	}

	sp := models.Sprint{
		CompanyID:   companyID,
		SprintID:    fmt.Sprintf("SPR-%03d", count+1),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
	}
	if err := db.Create(&sp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sprint"})
		return
	}

	logging.Event("sprint_created").WithField("sprint_id", sp.SprintID).Info("Sprint created")
	c.JSON(http.StatusCreated, sp)
}

// UpdateSprint handles PUT /api/sprints/:id
func UpdateSprint(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	var req UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sp.Name = req.Name
	sp.Description = req.Description
	sp.StartDate = req.StartDate
	sp.EndDate = req.EndDate
	if req.Status != "" {
		sp.Status = req.Status
	}
	sp.Progress = req.Progress

	if err := db.Save(&sp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sprint"})
		return
	}

	c.JSON(http.StatusOK, sp)
}

// CloseSprint handles POST /api/sprints/:id/close
// Marks the sprint Completed with full progress.
func CloseSprint(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	sp.Status = models.SprintCompleted
	sp.Progress = 100
	if err := db.Save(&sp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close sprint"})
		return
	}

	logging.Event("sprint_closed").WithField("sprint_id", sp.SprintID).Info("Sprint closed")
	c.JSON(http.StatusOK, sp)
}

// AddStoryToSprint handles POST /api/sprints/:id/stories
// A story belongs to at most one sprint backlog; adding it twice or while
// it sits in another sprint is a conflict.
func AddStoryToSprint(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	var req AddSprintStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := findStory(db, companyID, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	backlog, _, err := sprintBacklog(db, sp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint stories"})
		return
	}

	if _, err := backlog.Add(s.StoryID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if s.SprintID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Story is already in another sprint"})
		return
	}

	s.SprintID = &sp.ID
	if err := db.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add story to sprint"})
		return
	}

	realtime.GetHub().BroadcastEvent(companyID, "sprint_story_added", s.StoryID)
	c.JSON(http.StatusOK, s)
}

// RemoveStoryFromSprint handles DELETE /api/sprints/:id/stories/:storyId
// Removing a story that is not in the backlog is a no-op, since double
// removal from the UI is expected.
func RemoveStoryFromSprint(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	sp, err := findSprint(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sprint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sprint"})
		}
		return
	}

	s, err := findStory(db, companyID, c.Param("storyId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	if s.SprintID == nil || *s.SprintID != sp.ID {
		c.JSON(http.StatusOK, s)
		return
	}

	s.SprintID = nil
	if err := db.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove story from sprint"})
		return
	}

	realtime.GetHub().BroadcastEvent(companyID, "sprint_story_removed", s.StoryID)
	c.JSON(http.StatusOK, s)
}
