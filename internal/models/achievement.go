package models

import "time"

// EarnedAchievement records a first-time unlock. Rows are append-only:
// existence is the one-way gate that prevents duplicate unlocks.
type EarnedAchievement struct {
	ID       string    `gorm:"primaryKey;size:100" json:"id"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}

// TableName specifies the table name for GORM.
func (EarnedAchievement) TableName() string {
	return "earned_achievements"
}

// RequirementKind identifies how an achievement threshold is evaluated.
type RequirementKind string

const (
	RequireSessionCount   RequirementKind = "session_count"
	RequireLongestSession RequirementKind = "longest_session"
	RequireDeepWorkCount  RequirementKind = "deep_work_count"
	RequireActiveMinutes  RequirementKind = "active_minutes_today"
	RequireKeystrokes     RequirementKind = "keystrokes_today"
	RequireClicks         RequirementKind = "clicks_today"
	RequireStreakDays     RequirementKind = "consecutive_days"
	RequireEarlyStarts    RequirementKind = "early_starts"
	RequireLateNights     RequirementKind = "late_nights"
)

// AchievementDef is one catalog entry. Threshold is interpreted per kind
// (count, seconds, minutes, keystrokes, clicks or days); Hour applies only
// to the early-start and late-night kinds.
type AchievementDef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        RequirementKind `json:"kind"`
	Threshold   int64           `json:"threshold"`
	Hour        int             `json:"hour,omitempty"`
}

// AchievementStatus pairs a catalog entry with its earned state for
// presentation queries.
type AchievementStatus struct {
	AchievementDef
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// AchievementCatalog is the fixed set of recognized achievements.
var AchievementCatalog = []AchievementDef{
	{
		ID:          "first-focus",
		Name:        "First Focus",
		Description: "Complete your first focus session",
		Kind:        RequireSessionCount,
		Threshold:   1,
	},
	{
		ID:          "session-veteran",
		Name:        "Session Veteran",
		Description: "Complete 50 focus sessions",
		Kind:        RequireSessionCount,
		Threshold:   50,
	},
	{
		ID:          "marathon",
		Name:        "Marathon",
		Description: "Hold a single focus session for two hours",
		Kind:        RequireLongestSession,
		Threshold:   2 * 60 * 60,
	},
	{
		ID:          "deep-diver",
		Name:        "Deep Diver",
		Description: "Complete 10 deep-work sessions",
		Kind:        RequireDeepWorkCount,
		Threshold:   10,
	},
	{
		ID:          "busy-day",
		Name:        "Busy Day",
		Description: "Log 6 hours of active time in one day",
		Kind:        RequireActiveMinutes,
		Threshold:   6 * 60,
	},
	{
		ID:          "key-master",
		Name:        "Key Master",
		Description: "Type 10,000 keystrokes in one day",
		Kind:        RequireKeystrokes,
		Threshold:   10_000,
	},
	{
		ID:          "click-happy",
		Name:        "Click Happy",
		Description: "Click 2,500 times in one day",
		Kind:        RequireClicks,
		Threshold:   2_500,
	},
	{
		ID:          "week-streak",
		Name:        "Week Streak",
		Description: "Stay active 7 days in a row",
		Kind:        RequireStreakDays,
		Threshold:   7,
	},
	{
		ID:          "month-streak",
		Name:        "Month Streak",
		Description: "Stay active 30 days in a row",
		Kind:        RequireStreakDays,
		Threshold:   30,
	},
	{
		ID:          "early-bird",
		Name:        "Early Bird",
		Description: "Start before 7am on 5 different days",
		Kind:        RequireEarlyStarts,
		Threshold:   5,
		Hour:        7,
	},
	{
		ID:          "night-owl",
		Name:        "Night Owl",
		Description: "Stay active past 11pm on 5 different days",
		Kind:        RequireLateNights,
		Threshold:   5,
		Hour:        23,
	},
}

// CatalogEntry returns the catalog definition for an id, if present.
func CatalogEntry(id string) (AchievementDef, bool) {
	for _, def := range AchievementCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDef{}, false
}
