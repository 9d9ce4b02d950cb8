package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quiet-orbit/tally/internal/models"
)

// StartSession opens a focus session. If a session is already open it is
// returned unchanged, so duplicate UI-triggered starts are harmless. The
// open check and the insert share one transaction, keeping the single-open-
// session invariant under concurrent starts.
func (db *DB) StartSession(primaryAppID *uint) (*models.FocusSession, error) {
	var session *models.FocusSession
	err := db.Transaction(func(tx *DB) error {
		open, err := tx.OpenSession()
		if err != nil {
			return err
		}
		if open != nil {
			session = open
			return nil
		}

		created := models.FocusSession{
			ID:           uuid.New().String(),
			StartAt:      time.Now(),
			PrimaryAppID: primaryAppID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		session = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession closes a session and back-fills its keystroke and click totals
// from the counter store over the session's minute window, filtered to the
// primary app when one was set. Ending an absent session returns nil;
// ending a closed session returns it unchanged. The close and the counter
// query run in one transaction so no concurrent reader sees the session
// open mid-computation.
func (db *DB) EndSession(id string) (*models.FocusSession, error) {
	var session *models.FocusSession
	err := db.Transaction(func(tx *DB) error {
		var row models.FocusSession
		err := tx.Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load session %s: %w", id, err)
		}
		if row.EndAt != nil {
			session = &row
			return nil
		}

		now := time.Now()
		row.EndAt = &now

		startMinute := models.AlignMinute(row.StartAt)
		endMinute := models.AlignMinute(now)
		totals, err := tx.SumCounters(startMinute, endMinute, row.PrimaryAppID)
		if err != nil {
			return err
		}
		row.Keystrokes = totals.Keystrokes
		row.Clicks = totals.Clicks

		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("close session %s: %w", id, err)
		}
		session = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// OpenSession returns the currently open session, or nil when none exists.
func (db *DB) OpenSession() (*models.FocusSession, error) {
	var row models.FocusSession
	err := db.Where("end_at IS NULL").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &row, nil
}

// GetSession returns a session by id, or nil when absent.
func (db *DB) GetSession(id string) (*models.FocusSession, error) {
	var row models.FocusSession
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &row, nil
}

// IncrementInterruptions bumps the interruption count of an open session.
// Closed or absent sessions are left untouched.
func (db *DB) IncrementInterruptions(id string) error {
	err := db.Model(&models.FocusSession{}).
		Where("id = ? AND end_at IS NULL", id).
		Update("interruptions", gorm.Expr("interruptions + 1")).Error
	if err != nil {
		return fmt.Errorf("increment interruptions: %w", err)
	}
	return nil
}

// SessionsOverlapping returns closed sessions whose interval intersects
// [from, to), ordered by start time. Open sessions have no committed end and
// are excluded.
func (db *DB) SessionsOverlapping(from, to time.Time) ([]models.FocusSession, error) {
	var rows []models.FocusSession
	err := db.Where("end_at IS NOT NULL AND start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sessions overlapping: %w", err)
	}
	return rows, nil
}

// ClosedSessions returns every closed session ordered by start time.
func (db *DB) ClosedSessions() ([]models.FocusSession, error) {
	var rows []models.FocusSession
	err := db.Where("end_at IS NOT NULL").Order("start_at").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("closed sessions: %w", err)
	}
	return rows, nil
}

// CountClosedSessions returns the number of completed sessions.
func (db *DB) CountClosedSessions() (int64, error) {
	var n int64
	err := db.Model(&models.FocusSession{}).
		Where("end_at IS NOT NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
