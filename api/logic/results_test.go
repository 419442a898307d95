/* results_test.go
 * Contains unit tests for results.go and fixtures.go functions
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"
	"time"

	"arena-bot/api/shared"
	"arena-bot/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region date tests

func TestTodayAndYesterday_UTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 10, 13, 23, 30, 0, 0, loc)

	assert.Equal(t, "2026-10-14", Today(now))
	assert.Equal(t, "2026-10-13", Yesterday(now))
}

func TestYesterday_MonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, "2026-02-28", Yesterday(now))
}

func TestDayWindow(t *testing.T) {
	from, to, err := DayWindow("2026-10-13")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 10, 13, 23, 59, 59, 999_000_000, time.UTC), to)
}

func TestDayWindow_Invalid(t *testing.T) {
	for _, date := range []string{"", "2026-13-01", "13/10/2026", "2026-10-13T00:00:00Z"} {
		_, _, err := DayWindow(date)
		assert.ErrorIs(t, err, shared.ErrInvalidDate, date)
	}
}

// endregion

// region score tests

func TestFilterScores(t *testing.T) {
	from, to, err := DayWindow("2026-10-13")
	require.NoError(t, err)

	scores := []store.Score{
		{Player: "U1", Game: store.GameSnake, Score: 50, CreatedAt: from},
		{Player: "U2", Game: store.GameSnake, Score: 80, CreatedAt: to},
		{Player: "U3", Game: store.GameSnake, Score: 99, CreatedAt: from.Add(time.Hour)},  // not a participant
		{Player: "U1", Game: store.GameTetris, Score: 70, CreatedAt: from.Add(time.Hour)}, // wrong game
		{Player: "U2", Game: store.GameSnake, Score: 90, CreatedAt: to.Add(time.Millisecond)},
		{Player: "U2", Game: store.GameSnake, Score: 95, CreatedAt: from.Add(-time.Millisecond)},
	}

	filtered := FilterScores(scores, store.GameSnake, from, to, []string{"U1", "U2"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "U1", filtered[0].Player)
	assert.Equal(t, "U2", filtered[1].Player)
}

func TestRankScores(t *testing.T) {
	scores := []store.Score{
		{Player: "U1", Score: 50},
		{Player: "U2", Score: 80},
		{Player: "U3", Score: 50},
	}

	ranked := RankScores(scores, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "U2", ranked[0].Player)
	assert.Equal(t, "U1", ranked[1].Player, "ties keep input order")
	assert.Equal(t, "U3", ranked[2].Player)
	assert.Equal(t, "U1", scores[0].Player, "input is not reordered")
}

func TestRankScores_Limit(t *testing.T) {
	var scores []store.Score
	for i := range 15 {
		scores = append(scores, store.Score{Player: "U", Score: float64(i)})
	}

	ranked := RankScores(scores, ResultsLimit)
	require.Len(t, ranked, 10)
	assert.Equal(t, 14.0, ranked[0].Score)
	assert.Equal(t, 5.0, ranked[9].Score)
}

// endregion

// region fixture tests

func TestDailyFixtures_UniqueSlugs(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range DailyFixtures {
		assert.False(t, seen[def.Slug], "duplicate slug %s", def.Slug)
		seen[def.Slug] = true
		assert.True(t, def.Game.Valid())
		assert.NotEmpty(t, def.Title)
	}
}

func TestResolveFixture(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"sprint", "sprint", true},
		{"SPRINT", "sprint", true},
		{"Daily Marathon", "marathon", true},
		{"sprnt", "sprint", true},
		{"marathn", "marathon", true},
		{"duell", "duel", true},
		{"", "", false},
		{"chess championship", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			def, ok := ResolveFixture(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, def.Slug)
		})
	}
}

func TestFindFixture(t *testing.T) {
	def, ok := FindFixture("duel")
	require.True(t, ok)
	assert.Equal(t, store.GamePong, def.Game)

	_, ok = FindFixture("Duel")
	assert.False(t, ok)
}

func TestResolveName(t *testing.T) {
	names := []string{"Spring Cup", "Summer Cup", "Autumn Open"}

	assert.Equal(t, 0, ResolveName("spring cup", names))
	assert.Equal(t, 2, ResolveName("autumn", names))
	assert.Equal(t, 1, ResolveName("smmr", names))
	assert.Equal(t, -1, ResolveName("winter", names))
	assert.Equal(t, -1, ResolveName("", names))
}

// endregion
