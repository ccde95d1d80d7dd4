package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulsefit/core/internal/config"
	"github.com/pulsefit/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultAdminEmail is the seeded first-run admin account.
const DefaultAdminEmail = "admin@pulsefit.local"

// Connect opens a MySQL connection, runs migration, and seeds default
// rows on first run. The returned handle is injected into services;
// lifecycle is owned by the process entry point.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	if err := Seed(db, cfg.BootstrapPassword); err != nil {
		return nil, fmt.Errorf("seeding failed: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate runs GORM auto-migration for all models. Shared by the server
// and the test suites, which open a sqlite handle instead.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.PageModel{},
		&models.PostModel{},
		&models.TrainerModel{},
		&models.ClassModel{},
		&models.PlanModel{},
		&models.TestimonialModel{},
		&models.GalleryAlbumModel{},
		&models.GalleryImageModel{},
		&models.MediaModel{},
		&models.ContactSubmissionModel{},
		&models.MembershipInquiryModel{},
		&models.SettingModel{},
		&models.BulletinModel{},
		&models.ActivityLogModel{},
	)
}

// Seed inserts the first-run admin user and default settings. Runs only
// when the corresponding tables are empty.
func Seed(db *gorm.DB, bootstrapPassword string) error {
	var userCount int64
	if err := db.Model(&models.UserModel{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		if bootstrapPassword == "" {
			bootstrapPassword = "changeme123"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.UserModel{
			Email:    DefaultAdminEmail,
			Password: string(hash),
			Name:     "Administrator",
			Role:     models.RoleSuperAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	var settingCount int64
	if err := db.Model(&models.SettingModel{}).Count(&settingCount).Error; err != nil {
		return err
	}
	if settingCount == 0 {
		defaults := []models.SettingModel{
			{Key: "site_name", Value: "PulseFit", Type: "text"},
			{Key: "site_tagline", Value: "Train harder. Recover smarter.", Type: "text"},
			{Key: "contact_email", Value: "hello@pulsefit.local", Type: "text"},
			{Key: "contact_phone", Value: "", Type: "text"},
			{Key: "address", Value: "", Type: "text"},
			{Key: "opening_hours", Value: "", Type: "text"},
			{Key: "social_instagram", Value: "", Type: "text"},
			{Key: "social_facebook", Value: "", Type: "text"},
			{Key: "social_youtube", Value: "", Type: "text"},
		}
		if err := db.Create(&defaults).Error; err != nil {
			return err
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a storage-layer uniqueness
// failure. Both MySQL and sqlite surface it as a "duplicate"/"UNIQUE"
// message; gorm has no portable sentinel for it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
