package database

import (
	"taskhive-api/internal/logging"
	"taskhive-api/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the SQLite database, runs migrations and seeds the default
// company and admin account when the database is empty.
func InitDB(path, companyName, companyCode string) {
	var err error

	// glebarez/sqlite is a pure Go driver, no CGO required
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logging.Logger.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		logging.Logger.Fatal("Failed to migrate database: ", err)
	}

	if err := Seed(DB, companyName, companyCode); err != nil {
		logging.Logger.Fatal("Failed to seed database: ", err)
	}

	logging.Logger.Info("Database connected and migrated")
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Story{},
		&models.Sprint{},
		&models.Team{},
		&models.Sequence{},
	)
}

// Seed inserts the default company and an active admin user (email "root",
// password "root123") when no company exists yet.
func Seed(db *gorm.DB, companyName, companyCode string) error {
	var count int64
	if err := db.Model(&models.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	company := models.Company{
		Name:   companyName,
		Code:   companyCode,
		Domain: "taskhive.com",
	}
	if err := db.Create(&company).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("root123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		CompanyID:   company.ID,
		EmployeeID:  "EMP001",
		Name:        "Admin User",
		Email:       "root",
		Password:    string(hash),
		Designation: "Administrator",
		JobRole:     "BE",
		Role:        models.RoleAdmin,
		Status:      models.UserActive,
	}
	return db.Create(&admin).Error
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
