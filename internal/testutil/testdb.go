package testutil

import (
	"taskhive-api/internal/database"
	"taskhive-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB with migrations and the
// default company/admin seed applied.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db, "TaskHive Demo", "EMP"); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedStory inserts a story with sensible defaults, overridden by fn.
func SeedStory(db *gorm.DB, storyID string, fn func(*models.Story)) (models.Story, error) {
	s := models.Story{
		CompanyID: 1,
		StoryID:   storyID,
		Title:     "Seeded story " + storyID,
		Type:      models.TypeTask,
		Status:    models.StatusPending,
		Priority:  models.PriorityMedium,
		Deadline:  "2099-01-01",
	}
	if fn != nil {
		fn(&s)
	}
	err := db.Create(&s).Error
	return s, err
}
