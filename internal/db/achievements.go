package db

import (
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/quiet-orbit/tally/internal/models"
)

// IsEarned reports whether an achievement id has already been unlocked.
func (db *DB) IsEarned(id string) (bool, error) {
	var n int64
	err := db.Model(&models.EarnedAchievement{}).
		Where("id = ?", id).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check earned %s: %w", id, err)
	}
	return n > 0, nil
}

// MarkEarned records a first-time unlock. The insert is existence-gated by
// the primary key: a concurrent duplicate becomes a no-op, and the return
// value reports whether this call actually inserted the row.
func (db *DB) MarkEarned(id string, at time.Time) (bool, error) {
	row := models.EarnedAchievement{ID: id, EarnedAt: at}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("mark earned %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListEarned returns all unlocked achievements ordered by unlock time.
func (db *DB) ListEarned() ([]models.EarnedAchievement, error) {
	var rows []models.EarnedAchievement
	if err := db.Order("earned_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list earned: %w", err)
	}
	return rows, nil
}

// EarnedSet returns unlocked achievements as an id → unlock-time map.
func (db *DB) EarnedSet() (map[string]time.Time, error) {
	rows, err := db.ListEarned()
	if err != nil {
		return nil, err
	}
	set := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		set[row.ID] = row.EarnedAt
	}
	return set, nil
}
