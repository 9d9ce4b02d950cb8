package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quiet-orbit/tally/internal/db"
	"github.com/quiet-orbit/tally/internal/models"
)

// Aggregate recomputes the full daily rollup for a local-calendar date and
// writes it with replace semantics. The row is a deterministic function of
// the counter and session state for that day: running it twice with
// unchanged inputs produces identical derived fields. A day with no
// activity still yields an all-zero row.
func (e *Engine) Aggregate(date string) (*models.DailyRollup, error) {
	dayStart, dayEnd, err := models.DayBounds(date, e.loc)
	if err != nil {
		return nil, fmt.Errorf("aggregate %q: %w", date, err)
	}

	var rollup *models.DailyRollup
	txErr := e.db.Transaction(func(tx *db.DB) error {
		built, err := e.buildRollup(tx, date, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := tx.ReplaceRollup(built); err != nil {
			return err
		}
		rollup = built
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return rollup, nil
}

// buildRollup computes the rollup row without writing it.
func (e *Engine) buildRollup(tx *db.DB, date string, dayStart, dayEnd time.Time) (*models.DailyRollup, error) {
	startMinute, endMinute := dayMinuteRange(dayStart, dayEnd)

	totals, err := tx.SumCounters(startMinute, endMinute, nil)
	if err != nil {
		return nil, err
	}

	perApp, err := tx.ActiveSecondsByApp(startMinute, endMinute)
	if err != nil {
		return nil, err
	}

	// Focus seconds: overlap of every intersecting session, clipped to the
	// day, so a session spanning midnight contributes to each day only the
	// portion inside it.
	sessions, err := tx.SessionsOverlapping(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	var focusSeconds int64
	for i := range sessions {
		focusSeconds += sessions[i].Overlap(dayStart, dayEnd)
	}

	active := totals.ActiveSeconds

	focusScore := 0
	if active > 0 {
		focusScore = int(100 * focusSeconds / active)
		if focusScore > 100 {
			focusScore = 100
		}
	}

	distractions, err := tx.DistractionAppIDs()
	if err != nil {
		return nil, err
	}
	var productiveSeconds int64
	for _, row := range perApp {
		if !distractions[row.AppID] {
			productiveSeconds += row.ActiveSeconds
		}
	}
	productivityScore := 0
	if active > 0 {
		productivityScore = int(100 * productiveSeconds / active)
	}

	topApps, err := e.topApps(tx, perApp)
	if err != nil {
		return nil, err
	}

	histogram, err := e.hourlyHistogram(tx, startMinute, endMinute)
	if err != nil {
		return nil, err
	}

	rollup := &models.DailyRollup{
		Date:               date,
		TotalActiveSeconds: active,
		TotalFocusSeconds:  focusSeconds,
		TotalKeystrokes:    totals.Keystrokes,
		TotalClicks:        totals.Clicks,
		TotalScroll:        totals.ScrollDistance,
		FocusScore:         focusScore,
		ProductivityScore:  productivityScore,
		TopApps:            topApps,
		HourlyHistogram:    histogram,
	}

	if totals.FirstMinute > 0 {
		first := time.Unix(totals.FirstMinute, 0).In(e.loc)
		last := time.Unix(totals.LastMinute, 0).In(e.loc)
		rollup.FirstActivityAt = &first
		rollup.LastActivityAt = &last
	}

	return rollup, nil
}

// topApps serializes the top-N apps by active seconds. perApp arrives
// ordered by seconds descending with app id as tiebreak, which keeps the
// serialized payload deterministic.
func (e *Engine) topApps(tx *db.DB, perApp []models.AppSeconds) (string, error) {
	entries := make([]models.TopAppEntry, 0, models.TopAppCount)
	for _, row := range perApp {
		if len(entries) == models.TopAppCount {
			break
		}
		if row.ActiveSeconds <= 0 {
			continue
		}
		entry := models.TopAppEntry{AppID: row.AppID, ActiveSeconds: row.ActiveSeconds}
		app, err := tx.GetApp(row.AppID)
		if err != nil {
			return "", err
		}
		if app != nil {
			entry.Name = app.Name
		}
		entries = append(entries, entry)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshal top apps: %w", err)
	}
	return string(data), nil
}

// hourlyHistogram serializes active seconds bucketed by local hour of day.
func (e *Engine) hourlyHistogram(tx *db.DB, startMinute, endMinute int64) (string, error) {
	rows, err := tx.CountersInRange(startMinute, endMinute, nil)
	if err != nil {
		return "", err
	}

	var hist models.HourHistogram
	for i := range rows {
		hour := time.Unix(rows[i].Minute, 0).In(e.loc).Hour()
		hist[hour] += rows[i].ActiveSeconds
	}

	data, err := json.Marshal(hist)
	if err != nil {
		return "", fmt.Errorf("marshal histogram: %w", err)
	}
	return string(data), nil
}

// AggregateToday recomputes the rollup for the current calendar day.
func (e *Engine) AggregateToday() (*models.DailyRollup, error) {
	return e.Aggregate(e.today())
}

// Rollup returns the stored rollup for a date without recomputing it, or
// nil when none exists.
func (e *Engine) Rollup(date string) (*models.DailyRollup, error) {
	return e.db.GetRollup(date)
}
