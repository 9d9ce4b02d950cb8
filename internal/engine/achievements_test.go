package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiet-orbit/tally/internal/models"
)

func unlockedIDs(defs []models.AchievementDef) []string {
	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	return ids
}

func TestCheckAchievements_FirstFocus(t *testing.T) {
	eng, database := testEngine(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	closedSession(t, database, at.Add(-20*time.Minute), at, 0)

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(unlocked), "first-focus")
	assert.NotContains(t, unlockedIDs(unlocked), "session-veteran")
}

func TestCheckAchievements_UnlocksSurfaceOnce(t *testing.T) {
	eng, database := testEngine(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	closedSession(t, database, at.Add(-time.Hour), at, 0)

	first, err := eng.CheckAchievements()
	require.NoError(t, err)
	require.Contains(t, unlockedIDs(first), "first-focus")

	second, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.NotContains(t, unlockedIDs(second), "first-focus")
}

func TestCheckAchievements_NothingSatisfied(t *testing.T) {
	eng, _ := testEngine(t)
	fixClock(eng, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestCheckAchievements_Marathon(t *testing.T) {
	eng, database := testEngine(t)
	at := time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	closedSession(t, database, at.Add(-3*time.Hour), at, 0)

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(unlocked), "marathon")
}

func TestCheckAchievements_KeystrokesToday(t *testing.T) {
	eng, _ := testEngine(t)
	at := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	mergeAt(t, eng, at.Add(-time.Hour), "app.a", "App A",
		models.CounterDeltas{Keystrokes: 9_000, ActiveSeconds: 60})
	mergeAt(t, eng, at.Add(-30*time.Minute), "app.a", "App A",
		models.CounterDeltas{Keystrokes: 1_500, ActiveSeconds: 60})

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(unlocked), "key-master")
}

func TestCheckAchievements_KeystrokesYesterdayDoNotCount(t *testing.T) {
	eng, _ := testEngine(t)
	at := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	mergeAt(t, eng, at.AddDate(0, 0, -1), "app.a", "App A",
		models.CounterDeltas{Keystrokes: 50_000, ActiveSeconds: 60})

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.NotContains(t, unlockedIDs(unlocked), "key-master")
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	eng, _ := testEngine(t)
	now := time.Date(2026, 9, 3, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		mergeAt(t, eng, now.AddDate(0, 0, -i), "app.a", "App A",
			models.CounterDeltas{ActiveSeconds: 60})
	}

	streak, err := eng.Streak(now)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreak_GapResets(t *testing.T) {
	eng, _ := testEngine(t)
	now := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	mergeAt(t, eng, now, "app.a", "App A", models.CounterDeltas{ActiveSeconds: 60})
	// Skip yesterday; activity two days ago must not extend the streak.
	mergeAt(t, eng, now.AddDate(0, 0, -2), "app.a", "App A",
		models.CounterDeltas{ActiveSeconds: 60})

	streak, err := eng.Streak(now)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreak_NoActivity(t *testing.T) {
	eng, _ := testEngine(t)

	streak, err := eng.Streak(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, streak)
}

func TestStreak_StaleZeroRollupDefersToCounters(t *testing.T) {
	eng, database := testEngine(t)
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	// A zero rollup exists for today, written before the counters arrived.
	require.NoError(t, database.ReplaceRollup(&models.DailyRollup{Date: "2026-09-01"}))
	mergeAt(t, eng, now, "app.a", "App A", models.CounterDeltas{ActiveSeconds: 60})

	streak, err := eng.Streak(now)
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "raw counters decide when the rollup is stale")
}

func TestCheckAchievements_EarlyBird(t *testing.T) {
	eng, _ := testEngine(t)
	at := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	// Five distinct days with 6am activity.
	for i := 0; i < 5; i++ {
		day := time.Date(2026, 9, 5+i, 6, 30, 0, 0, time.UTC)
		mergeAt(t, eng, day, "app.a", "App A", models.CounterDeltas{ActiveSeconds: 60})
	}

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(unlocked), "early-bird")
	assert.NotContains(t, unlockedIDs(unlocked), "night-owl")
}

func TestCheckAchievements_EarlyBirdNeedsDistinctDays(t *testing.T) {
	eng, _ := testEngine(t)
	at := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	// Five early minutes, all on the same day.
	for i := 0; i < 5; i++ {
		ts := time.Date(2026, 9, 9, 6, 10+i, 0, 0, time.UTC)
		mergeAt(t, eng, ts, "app.a", "App A", models.CounterDeltas{ActiveSeconds: 60})
	}

	unlocked, err := eng.CheckAchievements()
	require.NoError(t, err)
	assert.NotContains(t, unlockedIDs(unlocked), "early-bird")
}

func TestCatalogWithStatus(t *testing.T) {
	eng, database := testEngine(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	fixClock(eng, at)

	closedSession(t, database, at.Add(-time.Hour), at, 0)
	_, err := eng.CheckAchievements()
	require.NoError(t, err)

	statuses, err := eng.CatalogWithStatus()
	require.NoError(t, err)
	require.Len(t, statuses, len(models.AchievementCatalog))

	byID := make(map[string]models.AchievementStatus, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}
	assert.True(t, byID["first-focus"].Earned)
	require.NotNil(t, byID["first-focus"].EarnedAt)
	assert.False(t, byID["month-streak"].Earned)
	assert.Nil(t, byID["month-streak"].EarnedAt)
}
