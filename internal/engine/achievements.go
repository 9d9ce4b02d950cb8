package engine

import (
	"fmt"
	"time"

	"github.com/quiet-orbit/tally/internal/models"
)

// streakBound caps the consecutive-days walk.
const streakBound = 365

// CheckAchievements evaluates every catalog entry that has not been earned
// yet and records first-time unlocks. It returns the newly-unlocked
// definitions, each surfaced exactly once: the existence-gated insert makes
// re-entrant calls no-ops.
func (e *Engine) CheckAchievements() ([]models.AchievementDef, error) {
	earned, err := e.db.EarnedSet()
	if err != nil {
		return nil, err
	}

	now := e.now().In(e.loc)
	metrics := &achievementMetrics{engine: e, now: now}

	var unlocked []models.AchievementDef
	for _, def := range models.AchievementCatalog {
		if _, ok := earned[def.ID]; ok {
			continue
		}

		satisfied, err := metrics.satisfies(def)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", def.ID, err)
		}
		if !satisfied {
			continue
		}

		inserted, err := e.db.MarkEarned(def.ID, now)
		if err != nil {
			return nil, err
		}
		if inserted {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked, nil
}

// CatalogWithStatus returns the full catalog annotated with earned state,
// for presentation queries.
func (e *Engine) CatalogWithStatus() ([]models.AchievementStatus, error) {
	earned, err := e.db.EarnedSet()
	if err != nil {
		return nil, err
	}

	out := make([]models.AchievementStatus, 0, len(models.AchievementCatalog))
	for _, def := range models.AchievementCatalog {
		status := models.AchievementStatus{AchievementDef: def}
		if at, ok := earned[def.ID]; ok {
			status.Earned = true
			earnedAt := at
			status.EarnedAt = &earnedAt
		}
		out = append(out, status)
	}
	return out, nil
}

// achievementMetrics lazily computes the store-derived quantities the
// catalog evaluates against, so one CheckAchievements call queries each
// signal at most once.
type achievementMetrics struct {
	engine *Engine
	now    time.Time

	sessions       []models.FocusSession
	sessionsLoaded bool

	todayTotals       *models.CounterTotals
	streak            *int
	hourDayCounts     map[int]int // early-start days per threshold hour
	lateHourDayCounts map[int]int // late-night days per threshold hour
}

func (m *achievementMetrics) satisfies(def models.AchievementDef) (bool, error) {
	switch def.Kind {
	case models.RequireSessionCount:
		sessions, err := m.closedSessions()
		if err != nil {
			return false, err
		}
		return int64(len(sessions)) >= def.Threshold, nil

	case models.RequireLongestSession:
		sessions, err := m.closedSessions()
		if err != nil {
			return false, err
		}
		var longest int64
		for i := range sessions {
			if secs := int64(sessions[i].Duration().Seconds()); secs > longest {
				longest = secs
			}
		}
		return longest >= def.Threshold, nil

	case models.RequireDeepWorkCount:
		sessions, err := m.closedSessions()
		if err != nil {
			return false, err
		}
		var deep int64
		for i := range sessions {
			if sessions[i].IsDeepWork() {
				deep++
			}
		}
		return deep >= def.Threshold, nil

	case models.RequireActiveMinutes:
		totals, err := m.today()
		if err != nil {
			return false, err
		}
		return totals.ActiveSeconds/60 >= def.Threshold, nil

	case models.RequireKeystrokes:
		totals, err := m.today()
		if err != nil {
			return false, err
		}
		return totals.Keystrokes >= def.Threshold, nil

	case models.RequireClicks:
		totals, err := m.today()
		if err != nil {
			return false, err
		}
		return totals.Clicks >= def.Threshold, nil

	case models.RequireStreakDays:
		streak, err := m.streakDays()
		if err != nil {
			return false, err
		}
		return int64(streak) >= def.Threshold, nil

	case models.RequireEarlyStarts:
		days, err := m.daysActiveBeforeHour(def.Hour)
		if err != nil {
			return false, err
		}
		return int64(days) >= def.Threshold, nil

	case models.RequireLateNights:
		days, err := m.daysActiveAtOrAfterHour(def.Hour)
		if err != nil {
			return false, err
		}
		return int64(days) >= def.Threshold, nil

	default:
		return false, fmt.Errorf("unknown requirement kind %q", def.Kind)
	}
}

func (m *achievementMetrics) closedSessions() ([]models.FocusSession, error) {
	if !m.sessionsLoaded {
		sessions, err := m.engine.db.ClosedSessions()
		if err != nil {
			return nil, err
		}
		m.sessions = sessions
		m.sessionsLoaded = true
	}
	return m.sessions, nil
}

func (m *achievementMetrics) today() (models.CounterTotals, error) {
	if m.todayTotals == nil {
		date := m.now.Format(models.DateFormat)
		dayStart, dayEnd, err := models.DayBounds(date, m.engine.loc)
		if err != nil {
			return models.CounterTotals{}, err
		}
		startMinute, endMinute := dayMinuteRange(dayStart, dayEnd)
		totals, err := m.engine.db.SumCounters(startMinute, endMinute, nil)
		if err != nil {
			return models.CounterTotals{}, err
		}
		m.todayTotals = &totals
	}
	return *m.todayTotals, nil
}

func (m *achievementMetrics) streakDays() (int, error) {
	if m.streak == nil {
		streak, err := m.engine.Streak(m.now)
		if err != nil {
			return 0, err
		}
		m.streak = &streak
	}
	return *m.streak, nil
}

func (m *achievementMetrics) daysActiveBeforeHour(hour int) (int, error) {
	if m.hourDayCounts == nil {
		m.hourDayCounts = make(map[int]int)
	}
	if days, ok := m.hourDayCounts[hour]; ok {
		return days, nil
	}
	days, err := m.engine.countHourDays(m.now, func(h int) bool { return h < hour })
	if err != nil {
		return 0, err
	}
	m.hourDayCounts[hour] = days
	return days, nil
}

func (m *achievementMetrics) daysActiveAtOrAfterHour(hour int) (int, error) {
	if m.lateHourDayCounts == nil {
		m.lateHourDayCounts = make(map[int]int)
	}
	if days, ok := m.lateHourDayCounts[hour]; ok {
		return days, nil
	}
	days, err := m.engine.countHourDays(m.now, func(h int) bool { return h >= hour })
	if err != nil {
		return 0, err
	}
	m.lateHourDayCounts[hour] = days
	return days, nil
}

// Streak returns the consecutive-active-days count ending at the calendar
// day containing now. The walk goes backward one local calendar day at a
// time and stops at the first day with no activity, bounded at a year. The
// raw counter presence query is authoritative; a cached rollup with a
// positive total short-circuits it as an optimization hint only.
func (e *Engine) Streak(now time.Time) (int, error) {
	now = now.In(e.loc)
	streak := 0
	for i := 0; i < streakBound; i++ {
		day := now.AddDate(0, 0, -i)
		active, err := e.dayHasActivity(day.Format(models.DateFormat))
		if err != nil {
			return 0, err
		}
		if !active {
			break
		}
		streak++
	}
	return streak, nil
}

// dayHasActivity answers "any activity on this local calendar day".
func (e *Engine) dayHasActivity(date string) (bool, error) {
	rollup, err := e.db.GetRollup(date)
	if err != nil {
		return false, err
	}
	if rollup != nil && rollup.TotalActiveSeconds > 0 {
		return true, nil
	}
	// Absent or zero rollup may just be stale; the raw counters decide.
	dayStart, dayEnd, err := models.DayBounds(date, e.loc)
	if err != nil {
		return false, err
	}
	startMinute, endMinute := dayMinuteRange(dayStart, dayEnd)
	return e.db.HasActivity(startMinute, endMinute)
}

// countHourDays counts the distinct local calendar days in the trailing
// year with activity in an hour matching the predicate.
func (e *Engine) countHourDays(now time.Time, match func(hour int) bool) (int, error) {
	now = now.In(e.loc)
	end := models.AlignMinute(now)
	start := models.AlignMinute(now.AddDate(-1, 0, 0))

	minutes, err := e.db.DistinctMinutes(start, end)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool)
	for _, minute := range minutes {
		t := time.Unix(minute, 0).In(e.loc)
		if match(t.Hour()) {
			days[t.Format(models.DateFormat)] = true
		}
	}
	return len(days), nil
}
