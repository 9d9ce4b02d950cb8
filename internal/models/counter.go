package models

import "time"

// MinuteCounter is an additive usage-metric row keyed by minute-aligned
// timestamp and application. Rows are created on the first event in a
// minute/app pair and only ever grow; fields are monotonically non-decreasing
// for the life of the row.
type MinuteCounter struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Minute is a minute-aligned Unix timestamp (seconds).
	Minute int64 `gorm:"not null;index;uniqueIndex:idx_counter_minute_app" json:"minute"`
	AppID  uint  `gorm:"not null;uniqueIndex:idx_counter_minute_app" json:"app_id"`

	Keystrokes      int64 `gorm:"not null;default:0" json:"keystrokes"`
	Clicks          int64 `gorm:"not null;default:0" json:"clicks"`
	ScrollDistance  int64 `gorm:"not null;default:0" json:"scroll_distance"`
	PointerDistance int64 `gorm:"not null;default:0" json:"pointer_distance"`
	ActiveSeconds   int64 `gorm:"not null;default:0" json:"active_seconds"`
	IdleSeconds     int64 `gorm:"not null;default:0" json:"idle_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (MinuteCounter) TableName() string {
	return "minute_counters"
}

// CounterDeltas carries the non-negative increments merged into a counter
// row. Negative values are a caller error; the store trusts its input.
type CounterDeltas struct {
	Keystrokes      int64 `json:"keystrokes"`
	Clicks          int64 `json:"clicks"`
	ScrollDistance  int64 `json:"scroll_distance"`
	PointerDistance int64 `json:"pointer_distance"`
	ActiveSeconds   int64 `json:"active_seconds"`
	IdleSeconds     int64 `json:"idle_seconds"`
}

// IsZero reports whether every delta is zero.
func (d CounterDeltas) IsZero() bool {
	return d == CounterDeltas{}
}

// CounterTotals is the summed view of a counter range.
type CounterTotals struct {
	Keystrokes      int64 `json:"keystrokes"`
	Clicks          int64 `json:"clicks"`
	ScrollDistance  int64 `json:"scroll_distance"`
	PointerDistance int64 `json:"pointer_distance"`
	ActiveSeconds   int64 `json:"active_seconds"`
	IdleSeconds     int64 `json:"idle_seconds"`

	// FirstMinute and LastMinute bound the rows that contributed; both are
	// zero when the range held no rows.
	FirstMinute int64 `json:"first_minute"`
	LastMinute  int64 `json:"last_minute"`
}

// AppSeconds pairs an application with its summed active seconds over a
// range.
type AppSeconds struct {
	AppID         uint  `json:"app_id"`
	ActiveSeconds int64 `json:"active_seconds"`
}

// AlignMinute floors a timestamp to its containing minute.
func AlignMinute(t time.Time) int64 {
	return t.Unix() - t.Unix()%60
}
