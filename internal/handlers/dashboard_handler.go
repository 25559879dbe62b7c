package handlers

import (
	"net/http"
	"time"

	"taskhive-api/internal/cache"
	"taskhive-api/internal/database"
	"taskhive-api/internal/models"
	"taskhive-api/internal/story"

	"github.com/gin-gonic/gin"
)

// DashboardStats aggregates company-wide story and sprint counts.
type DashboardStats struct {
	TotalStories      int64 `json:"totalStories"`
	CompletedStories  int64 `json:"completedStories"`
	InProgressStories int64 `json:"inProgressStories"`
	PendingStories    int64 `json:"pendingStories"`
	OverdueStories    int64 `json:"overdueStories"`
	TotalSprints      int64 `json:"totalSprints"`
	ActiveSprints     int64 `json:"activeSprints"`
}

// Recomputing on every dashboard poll is wasteful; stats may lag by the TTL.
const statsTTL = 30 * time.Second

var statsCache = cache.New[uint, DashboardStats]()

// GetDashboardStats handles GET /api/analytics/dashboard
func GetDashboardStats(c *gin.Context) {
	companyID := requestCompanyID(c)

	if stats, ok := statsCache.Get(companyID); ok {
		c.JSON(http.StatusOK, stats)
		return
	}

	db := database.GetDB()

	var stories []models.Story
	if err := db.Where("company_id = ?", companyID).Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	now := time.Now()
	stats := DashboardStats{TotalStories: int64(len(stories))}
	for _, s := range stories {
		switch story.EffectiveStatus(s, now) {
		case models.StatusCompleted:
			stats.CompletedStories++
		case models.StatusInProgress:
			stats.InProgressStories++
		case models.StatusPending:
			stats.PendingStories++
		case models.StatusOverdue:
			stats.OverdueStories++
		}
	}

	if err := db.Model(&models.Sprint{}).Where("company_id = ?", companyID).
		Count(&stats.TotalSprints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if err := db.Model(&models.Sprint{}).
		Where("company_id = ? AND status = ?", companyID, models.SprintActive).
		Count(&stats.ActiveSprints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	statsCache.Set(companyID, stats, statsTTL)
	c.JSON(http.StatusOK, stats)
}
