package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quiet-orbit/tally/internal/models"
)

// ReplaceRollup writes the single rollup row for its date with full replace
// semantics. The aggregator recomputes the whole row; nothing is ever
// patched incrementally.
func (db *DB) ReplaceRollup(rollup *models.DailyRollup) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(rollup).Error
	if err != nil {
		return fmt.Errorf("replace rollup %s: %w", rollup.Date, err)
	}
	return nil
}

// GetRollup returns the rollup for a date, or nil when none has been
// computed yet.
func (db *DB) GetRollup(date string) (*models.DailyRollup, error) {
	var row models.DailyRollup
	err := db.Where("date = ?", date).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rollup %s: %w", date, err)
	}
	return &row, nil
}

// RollupsBetween returns rollups with from <= date <= to, ascending. Date
// strings compare lexicographically in calendar order.
func (db *DB) RollupsBetween(from, to string) ([]models.DailyRollup, error) {
	var rows []models.DailyRollup
	err := db.Where("date >= ? AND date <= ?", from, to).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rollups between: %w", err)
	}
	return rows, nil
}
