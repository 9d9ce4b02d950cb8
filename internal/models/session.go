package models

import "time"

// Deep-work classification thresholds.
const (
	DeepWorkMinDuration      = 25 * time.Minute
	DeepWorkMaxInterruptions = 3
)

// FocusSession is a user-delimited deep-work interval. A null EndAt means
// the session is still open; at most one open session exists at any time.
// Keystrokes and clicks are back-filled from the counter store when the
// session closes.
type FocusSession struct {
	ID      string     `gorm:"primaryKey;size:36" json:"id"`
	StartAt time.Time  `gorm:"not null;index" json:"start_at"`
	EndAt   *time.Time `gorm:"index" json:"end_at"`

	PrimaryAppID *uint `json:"primary_app_id"`

	Keystrokes    int64 `gorm:"not null;default:0" json:"keystrokes"`
	Clicks        int64 `gorm:"not null;default:0" json:"clicks"`
	Interruptions int   `gorm:"not null;default:0" json:"interruptions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (FocusSession) TableName() string {
	return "focus_sessions"
}

// IsOpen reports whether the session has not been closed yet.
func (s *FocusSession) IsOpen() bool {
	return s.EndAt == nil
}

// Duration returns end − start for a closed session, and zero for an open
// one.
func (s *FocusSession) Duration() time.Duration {
	if s.EndAt == nil {
		return 0
	}
	return s.EndAt.Sub(s.StartAt)
}

// IsDeepWork reports whether a closed session qualifies as deep work:
// at least 25 minutes long with fewer than 3 interruptions.
func (s *FocusSession) IsDeepWork() bool {
	if s.EndAt == nil {
		return false
	}
	return s.Duration() >= DeepWorkMinDuration && s.Interruptions < DeepWorkMaxInterruptions
}

// Overlap returns the portion of the session, in seconds, that falls inside
// [from, to). Open sessions have no committed interval and overlap nothing.
func (s *FocusSession) Overlap(from, to time.Time) int64 {
	if s.EndAt == nil {
		return 0
	}
	start := s.StartAt
	if from.After(start) {
		start = from
	}
	end := *s.EndAt
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int64(end.Sub(start).Seconds())
}
