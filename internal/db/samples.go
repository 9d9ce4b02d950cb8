package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/quiet-orbit/tally/internal/models"
)

// UpsertSample stores an auxiliary payload blob for (eventType, timestamp).
// Re-recording the same key replaces the payload: last writer wins.
func (db *DB) UpsertSample(eventType string, timestamp int64, payload []byte) error {
	row := models.SamplePayload{
		EventType: eventType,
		Timestamp: timestamp,
		Payload:   payload,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_type"}, {Name: "timestamp"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert sample: %w", err)
	}
	return nil
}

// SamplesInRange returns payload rows of one event type with
// from <= timestamp <= to, ordered by timestamp. Payloads are returned
// undecoded.
func (db *DB) SamplesInRange(eventType string, from, to int64) ([]models.SamplePayload, error) {
	if from > to {
		return nil, nil
	}

	var rows []models.SamplePayload
	err := db.Where("event_type = ? AND timestamp >= ? AND timestamp <= ?", eventType, from, to).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("samples in range: %w", err)
	}
	return rows, nil
}

// PruneSamplesBefore deletes payload rows older than the cutoff timestamp.
func (db *DB) PruneSamplesBefore(cutoff int64) (int64, error) {
	res := db.Where("timestamp < ?", cutoff).Delete(&models.SamplePayload{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune samples: %w", res.Error)
	}
	return res.RowsAffected, nil
}
