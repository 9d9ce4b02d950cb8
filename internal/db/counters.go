package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quiet-orbit/tally/internal/models"
)

// MergeCounter atomically adds deltas to the counter row for (minute, appID),
// creating the row when absent. The merge is a single native upsert, so
// concurrent callers can never lose increments to a read-then-write race.
// Deltas are trusted to be non-negative; rows only ever grow.
func (db *DB) MergeCounter(minute int64, appID uint, d models.CounterDeltas) error {
	row := models.MinuteCounter{
		Minute:          minute,
		AppID:           appID,
		Keystrokes:      d.Keystrokes,
		Clicks:          d.Clicks,
		ScrollDistance:  d.ScrollDistance,
		PointerDistance: d.PointerDistance,
		ActiveSeconds:   d.ActiveSeconds,
		IdleSeconds:     d.IdleSeconds,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "minute"}, {Name: "app_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"keystrokes":       gorm.Expr("keystrokes + excluded.keystrokes"),
			"clicks":           gorm.Expr("clicks + excluded.clicks"),
			"scroll_distance":  gorm.Expr("scroll_distance + excluded.scroll_distance"),
			"pointer_distance": gorm.Expr("pointer_distance + excluded.pointer_distance"),
			"active_seconds":   gorm.Expr("active_seconds + excluded.active_seconds"),
			"idle_seconds":     gorm.Expr("idle_seconds + excluded.idle_seconds"),
			"updated_at":       time.Now(),
		}),
	}).Create(&row).Error
}

// SumCounters sums all counter rows with start <= minute <= end, optionally
// filtered to a single app. An inverted range returns zero totals, not an
// error.
func (db *DB) SumCounters(start, end int64, appID *uint) (models.CounterTotals, error) {
	var totals models.CounterTotals
	if start > end {
		return totals, nil
	}

	q := db.Model(&models.MinuteCounter{}).
		Select(`COALESCE(SUM(keystrokes), 0) AS keystrokes,
			COALESCE(SUM(clicks), 0) AS clicks,
			COALESCE(SUM(scroll_distance), 0) AS scroll_distance,
			COALESCE(SUM(pointer_distance), 0) AS pointer_distance,
			COALESCE(SUM(active_seconds), 0) AS active_seconds,
			COALESCE(SUM(idle_seconds), 0) AS idle_seconds,
			COALESCE(MIN(minute), 0) AS first_minute,
			COALESCE(MAX(minute), 0) AS last_minute`).
		Where("minute >= ? AND minute <= ?", start, end)
	if appID != nil {
		q = q.Where("app_id = ?", *appID)
	}

	if err := q.Scan(&totals).Error; err != nil {
		return models.CounterTotals{}, fmt.Errorf("sum counters: %w", err)
	}
	return totals, nil
}

// CountersInRange returns per-minute rows with start <= minute <= end,
// ordered by timestamp. Used for timeline reconstruction.
func (db *DB) CountersInRange(start, end int64, appID *uint) ([]models.MinuteCounter, error) {
	if start > end {
		return nil, nil
	}

	q := db.Where("minute >= ? AND minute <= ?", start, end).
		Order("minute, app_id")
	if appID != nil {
		q = q.Where("app_id = ?", *appID)
	}

	var rows []models.MinuteCounter
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("counters in range: %w", err)
	}
	return rows, nil
}

// ActiveSecondsByApp sums active seconds per app over the range, ordered by
// active seconds descending with app id as a deterministic tiebreak.
func (db *DB) ActiveSecondsByApp(start, end int64) ([]models.AppSeconds, error) {
	if start > end {
		return nil, nil
	}

	var rows []models.AppSeconds
	err := db.Model(&models.MinuteCounter{}).
		Select("app_id, COALESCE(SUM(active_seconds), 0) AS active_seconds").
		Where("minute >= ? AND minute <= ?", start, end).
		Group("app_id").
		Order("active_seconds DESC, app_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("active seconds by app: %w", err)
	}
	return rows, nil
}

// HasActivity reports whether any counter row with active time exists in
// the range. This is the authoritative presence check for streak walks.
func (db *DB) HasActivity(start, end int64) (bool, error) {
	if start > end {
		return false, nil
	}

	var ids []uint
	err := db.Model(&models.MinuteCounter{}).
		Where("minute >= ? AND minute <= ? AND active_seconds > 0", start, end).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, fmt.Errorf("activity presence: %w", err)
	}
	return len(ids) > 0, nil
}

// DistinctMinutes returns the distinct minute timestamps with active time in
// the range, ascending. Used for hour-of-day bucketing.
func (db *DB) DistinctMinutes(start, end int64) ([]int64, error) {
	if start > end {
		return nil, nil
	}

	var minutes []int64
	err := db.Model(&models.MinuteCounter{}).
		Distinct("minute").
		Where("minute >= ? AND minute <= ? AND active_seconds > 0", start, end).
		Order("minute").
		Pluck("minute", &minutes).Error
	if err != nil {
		return nil, fmt.Errorf("distinct minutes: %w", err)
	}
	return minutes, nil
}

// PruneCountersBefore deletes counter rows older than the cutoff minute and
// returns the number of rows removed. Rollups over pruned ranges simply show
// reduced totals.
func (db *DB) PruneCountersBefore(cutoff int64) (int64, error) {
	res := db.Where("minute < ?", cutoff).Delete(&models.MinuteCounter{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune counters: %w", res.Error)
	}
	return res.RowsAffected, nil
}
