package models

import "time"

// DateFormat is the calendar-day key format used by rollups and streak
// queries: local-timezone YYYY-MM-DD.
const DateFormat = "2006-01-02"

// DailyRollup is a full-day derived summary. Exactly one row exists per
// date; the row is always replaced whole, never patched, so recomputing it
// with unchanged inputs is byte-identical.
type DailyRollup struct {
	Date string `gorm:"primaryKey;size:10" json:"date"`

	TotalActiveSeconds int64 `gorm:"not null;default:0" json:"total_active_seconds"`
	TotalFocusSeconds  int64 `gorm:"not null;default:0" json:"total_focus_seconds"`
	TotalKeystrokes    int64 `gorm:"not null;default:0" json:"total_keystrokes"`
	TotalClicks        int64 `gorm:"not null;default:0" json:"total_clicks"`
	TotalScroll        int64 `gorm:"not null;default:0" json:"total_scroll"`

	FirstActivityAt *time.Time `json:"first_activity_at"`
	LastActivityAt  *time.Time `json:"last_activity_at"`

	// Scores are 0–100 with explicit zero-guards on empty days.
	FocusScore        int `gorm:"not null;default:0" json:"focus_score"`
	ProductivityScore int `gorm:"not null;default:0" json:"productivity_score"`

	// TopApps and HourlyHistogram are JSON-serialized payloads consumed
	// opaquely by the presentation layer.
	TopApps         string `gorm:"type:text" json:"top_apps"`
	HourlyHistogram string `gorm:"type:text" json:"hourly_histogram"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (DailyRollup) TableName() string {
	return "daily_rollups"
}

// TopAppEntry is one row of the serialized top-N app summary.
type TopAppEntry struct {
	AppID         uint   `json:"app_id"`
	Name          string `json:"name"`
	ActiveSeconds int64  `json:"active_seconds"`
}

// TopAppCount is the number of entries kept in a rollup's top-app summary.
const TopAppCount = 5

// HourHistogram holds active seconds per local hour of day (index 0–23).
type HourHistogram [24]int64

// DayBounds returns the [start, end) bounds of the calendar day containing
// date in the given location.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1), nil
}
