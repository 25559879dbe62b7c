package handlers

import (
	"errors"
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

// CreateStoryRequest represents the request payload for creating a story
type CreateStoryRequest struct {
	Title              string               `json:"title" binding:"required"`
	Description        string               `json:"description"`
	Type               models.StoryType     `json:"type" binding:"required"`
	Priority           models.StoryPriority `json:"priority"`
	Status             models.StoryStatus   `json:"status"`
	AssigneeName       string               `json:"assigneeName"`
	StoryPoints        int                  `json:"storyPoints"`
	Progress           int                  `json:"progress"`
	Deadline           string               `json:"deadline"`
	AcceptanceCriteria string               `json:"acceptanceCriteria"`
}

// UpdateStoryRequest is a full-record replacement payload. The story's id
// and type are immutable after creation and are not accepted here.
type UpdateStoryRequest struct {
	Title              string               `json:"title" binding:"required"`
	Description        string               `json:"description"`
	Priority           models.StoryPriority `json:"priority"`
	Status             models.StoryStatus   `json:"status" binding:"required"`
	AssigneeName       string               `json:"assigneeName"`
	StoryPoints        int                  `json:"storyPoints"`
	Progress           int                  `json:"progress"`
	Deadline           string               `json:"deadline"`
	AcceptanceCriteria string               `json:"acceptanceCriteria"`
}

// UpdateStoryStatusRequest optionally names the target status. When empty
// the engine's suggested transition is applied.
type UpdateStoryStatusRequest struct {
	Status models.StoryStatus `json:"status"`
}

// StoryView decorates a story with the view-only derived fields.
type StoryView struct {
	models.Story
	EffectiveStatus models.StoryStatus `json:"effectiveStatus"`
	ActionLabel     string             `json:"actionLabel"`
}

func storyView(s models.Story, now time.Time, isAdmin bool) StoryView {
	return StoryView{
		Story:           s,
		EffectiveStatus: story.EffectiveStatus(s, now),
		ActionLabel:     story.ActionLabel(s, now, isAdmin),
	}
}

// newCodec builds the identifier codec for a company, backed by the durable
// sequence table.
func newCodec(db *gorm.DB, companyID uint) *story.Codec {
	prefix := story.DefaultPrefix
	var company models.Company
	if err := db.First(&company, companyID).Error; err == nil && company.Code != "" {
		prefix = company.Code
	}
	return story.NewCodec(prefix, story.NewDBAllocator(db, companyID))
}

// findStory resolves a route parameter to a story. Identifiers in codec
// format match the story_id column; anything else is tried as the numeric
// primary key, so stale or foreign ids degrade to a 404 instead of a 500.
func findStory(db *gorm.DB, companyID uint, idParam string) (models.Story, error) {
	var s models.Story
	if parsed := story.Parse(idParam); parsed != nil {
		err := db.Where("company_id = ? AND story_id = ?", companyID, idParam).First(&s).Error
		return s, err
	}
	n, convErr := strconv.Atoi(idParam)
	if convErr != nil {
		return s, gorm.ErrRecordNotFound
	}
	err := db.Where("company_id = ? AND id = ?", companyID, n).First(&s).Error
	return s, err
}

// progress == 100 and Completed status imply each other on every write.
func validateProgress(status models.StoryStatus, progress int) (int, error) {
	if progress < 0 || progress > 100 {
		return 0, errors.New("progress must be between 0 and 100")
	}
	if status == models.StatusCompleted {
		return 100, nil
	}
	if progress == 100 {
		return 0, errors.New("progress 100 requires Completed status")
	}
	return progress, nil
}

func validStoredStatus(s models.StoryStatus) bool {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

// GetStories handles GET /api/stories
// Returns the company's stories with derived status fields, optionally
// filtered by type or assignee.
func GetStories(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	query := db.Where("company_id = ?", companyID)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var stories []models.Story
	if err := query.Order("id asc").Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}

	if assignee := c.Query("assignee"); assignee != "" {
		filtered := story.Available(stories, nil, story.ByAssignee(assignee))
		stories = filtered
	}

	now := time.Now()
	isAdmin := middleware.IsAdmin(c)
	views := make([]StoryView, 0, len(stories))
	for _, s := range stories {
		views = append(views, storyView(s, now, isAdmin))
	}

	c.JSON(http.StatusOK, views)
}

// GetStoryByID handles GET /api/stories/:id
func GetStoryByID(c *gin.Context) {
	companyID := requestCompanyID(c)
	s, err := findStory(database.GetDB(), companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	c.JSON(http.StatusOK, storyView(s, time.Now(), middleware.IsAdmin(c)))
}

// CreateStory handles POST /api/stories
// Assigns the typed story identifier and persists the record.
func CreateStory(c *gin.Context) {
	companyID := requestCompanyID(c)

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !validStoredStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	progress, err := validateProgress(status, req.Progress)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	storyID, err := newCodec(db, companyID).Generate(req.Type)
	if err != nil {
		if errors.Is(err, story.ErrUnknownType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story type"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate story id"})
		}
		return
	}

	s := models.Story{
		CompanyID:          companyID,
		StoryID:            storyID,
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Priority:           req.Priority,
		Status:             status,
		AssigneeName:       story.JoinAssignees(story.SplitAssignees(req.AssigneeName)),
		StoryPoints:        req.StoryPoints,
		Progress:           progress,
		Deadline:           req.Deadline,
		AcceptanceCriteria: req.AcceptanceCriteria,
		CreatedBy:          middleware.UserID(c),
	}

	if err := db.Create(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create story"})
		return
	}

	logging.Event("story_created").WithField("story_id", s.StoryID).Info("Story created")
	realtime.GetHub().BroadcastEvent(companyID, "story_created", s.StoryID)

	c.JSON(http.StatusCreated, storyView(s, time.Now(), middleware.IsAdmin(c)))
}

// UpdateStory handles PUT /api/stories/:id
// Whole-record replacement; id, type and createdAt stay immutable.
func UpdateStory(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	s, err := findStory(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	var req UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validStoredStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	progress, err := validateProgress(req.Status, req.Progress)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.Title = req.Title
	s.Description = req.Description
	s.Priority = req.Priority
	s.Status = req.Status
	s.AssigneeName = story.JoinAssignees(story.SplitAssignees(req.AssigneeName))
	s.StoryPoints = req.StoryPoints
	s.Progress = progress
	s.Deadline = req.Deadline
	s.AcceptanceCriteria = req.AcceptanceCriteria

	if err := db.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update story"})
		return
	}

	realtime.GetHub().BroadcastEvent(companyID, "story_updated", s.StoryID)
	c.JSON(http.StatusOK, storyView(s, time.Now(), middleware.IsAdmin(c)))
}

// UpdateStoryStatus handles PATCH /api/stories/:id/status
// Applies the engine's forward transition. A target status in the body must
// match the legal transition; progress is derived from the new status.
func UpdateStoryStatus(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	s, err := findStory(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	// An empty or absent body means "apply the suggested transition"
	var req UpdateStoryStatusRequest
	_ = c.ShouldBindJSON(&req)

	now := time.Now()
	isAdmin := middleware.IsAdmin(c)
	next, ok := story.NextStatus(s, now, isAdmin)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "No status transition available"})
		return
	}
	if req.Status != "" && req.Status != next {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested status does not match the allowed transition",
			"next":  next,
		})
		return
	}

	s.Status = next
	s.Progress = story.ProgressFor(next)
	if err := db.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	realtime.GetHub().BroadcastEvent(companyID, "story_status_changed", s.StoryID)
	c.JSON(http.StatusOK, storyView(s, now, isAdmin))
}

// DeleteStory handles DELETE /api/stories/:id
// Removing the row also removes the story from its sprint backlog, since
// membership lives on the story record.
func DeleteStory(c *gin.Context) {
	companyID := requestCompanyID(c)
	db := database.GetDB()

	s, err := findStory(db, companyID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		}
		return
	}

	if err := db.Delete(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete story"})
		return
	}

	logging.Event("story_deleted").WithField("story_id", s.StoryID).Info("Story deleted")
	realtime.GetHub().BroadcastEvent(companyID, "story_deleted", s.StoryID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Story deleted successfully",
		"storyId": s.StoryID,
	})
}

// requestCompanyID resolves the company scope of a request. Admins may
// address another company via the companyId query param; everyone else is
// pinned to the company in their token.
func requestCompanyID(c *gin.Context) uint {
	if q := c.Query("companyId"); q != "" && middleware.IsAdmin(c) {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			return uint(n)
		}
	}
	return middleware.CompanyID(c)
}
