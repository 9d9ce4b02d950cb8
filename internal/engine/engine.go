// Package engine derives productivity statistics from the raw usage data in
// the store: daily rollups, focus metrics, achievement unlocks, and bounded
// sample retrieval. It is a plain in-process library; callers construct one
// Engine per store handle and query it from wherever they run.
package engine

import (
	"fmt"
	"time"

	"github.com/quiet-orbit/tally/internal/db"
	"github.com/quiet-orbit/tally/internal/models"
)

// Engine computes derived statistics over a store. All dependencies are
// injected; there is no ambient global instance.
type Engine struct {
	db  *db.DB
	loc *time.Location
	now func() time.Time
}

// New creates an engine over the given store. Calendar-day boundaries are
// computed in loc; nil means the system local timezone.
func New(database *db.DB, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		db:  database,
		loc: loc,
		now: time.Now,
	}
}

// Location returns the timezone used for calendar-day boundaries.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// RecordActivity ingests one capture-source observation: the app is
// find-or-created and the deltas merged into the counter row for the
// observation's minute. Deltas are a documented precondition: the capture
// source sends non-negative values.
func (e *Engine) RecordActivity(ts time.Time, bundleID, displayName string, deltas models.CounterDeltas) error {
	if bundleID == "" {
		return fmt.Errorf("record activity: empty bundle id")
	}
	return e.db.Transaction(func(tx *db.DB) error {
		app, err := tx.FindOrCreateApp(bundleID, displayName)
		if err != nil {
			return err
		}
		return tx.MergeCounter(models.AlignMinute(ts), app.ID, deltas)
	})
}

// RecordSamples stores an opaque auxiliary payload for later bounded
// retrieval. The engine never interprets the bytes on the write path.
func (e *Engine) RecordSamples(eventType string, ts time.Time, payload []byte) error {
	return e.db.UpsertSample(eventType, ts.Unix(), payload)
}

// today returns the current calendar date string in the engine's timezone.
func (e *Engine) today() string {
	return e.now().In(e.loc).Format(models.DateFormat)
}

// dayMinuteRange returns the inclusive minute-timestamp bounds of a
// calendar day.
func dayMinuteRange(dayStart, dayEnd time.Time) (int64, int64) {
	return dayStart.Unix(), dayEnd.Unix() - 60
}
