package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiet-orbit/tally/internal/models"
)

// FindOrCreateApp returns the app for a bundle id, creating it on first
// observation with an auto-assigned category. Concurrent callers racing on
// the same bundle id are resolved by the unique constraint: the losing
// insert falls back to a read.
func (db *DB) FindOrCreateApp(bundleID, displayName string) (*models.App, error) {
	var app models.App
	err := db.Where("bundle_id = ?", bundleID).First(&app).Error
	if err == nil {
		return &app, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find app %q: %w", bundleID, err)
	}

	category := models.CategoryFor(bundleID)
	app = models.App{
		BundleID:      bundleID,
		Name:          displayName,
		Category:      category,
		IsDistraction: models.DefaultDistraction(category),
	}
	if err := db.Create(&app).Error; err != nil {
		// Lost the insert race; the row must exist now.
		var existing models.App
		if readErr := db.Where("bundle_id = ?", bundleID).First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("create app %q: %w", bundleID, err)
	}
	return &app, nil
}

// GetApp returns an app by internal key, or nil when absent.
func (db *DB) GetApp(id uint) (*models.App, error) {
	var app models.App
	err := db.First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app %d: %w", id, err)
	}
	return &app, nil
}

// GetAppByBundleID returns an app by its opaque identifier, or nil when
// absent.
func (db *DB) GetAppByBundleID(bundleID string) (*models.App, error) {
	var app models.App
	err := db.Where("bundle_id = ?", bundleID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app %q: %w", bundleID, err)
	}
	return &app, nil
}

// ListApps returns all known apps ordered by name.
func (db *DB) ListApps() ([]models.App, error) {
	var apps []models.App
	if err := db.Order("name, id").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	return apps, nil
}

// SetAppCategory applies a user category override and distraction flag.
func (db *DB) SetAppCategory(id uint, category models.AppCategory, distraction bool) error {
	if !models.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	res := db.Model(&models.App{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"category":       category,
			"is_distraction": distraction,
		})
	if res.Error != nil {
		return fmt.Errorf("set app category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("app %d not found", id)
	}
	return nil
}

// DistractionAppIDs returns the internal keys of all apps flagged as
// distractions.
func (db *DB) DistractionAppIDs() (map[uint]bool, error) {
	var ids []uint
	err := db.Model(&models.App{}).
		Where("is_distraction = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("distraction apps: %w", err)
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
