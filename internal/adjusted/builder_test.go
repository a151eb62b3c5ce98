package adjusted

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	homeRoster = []string{"A", "B", "C", "D", "E"}
	awayRoster = []string{"F", "G", "H", "I", "J"}
)

// gameEvents fabricates a plausible 5-minute stretch of box-score events
// for both sides of one game.
func gameEvents(game string, homePts, visitorPts float64) []PlayByPlayEvent {
	return []PlayByPlayEvent{
		{Game: game, Minute: 1, Home: true, Points: homePts, FGA: 8, FGM: 3, FTA: 2, OREB: 2, DREB: 4, Turnover: 1},
		{Game: game, Minute: 3, Home: true, FGA: 2, OREB: 1, DREB: 1},
		{Game: game, Minute: 2, Home: false, Points: visitorPts, FGA: 7, FGM: 3, FTA: 1, OREB: 1, DREB: 3, Turnover: 2},
		{Game: game, Minute: 4, Home: false, FGA: 3, DREB: 2},
	}
}

func testEncoder() *LineupEncoder {
	return NewLineupEncoder(poolPlayers(500, append(append([]string{}, homeRoster...), awayRoster...)...), 388)
}

func TestBuilderBuild(t *testing.T) {
	windows := []LineupWindow{
		{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
		{Game: "G2", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
	}
	events := append(gameEvents("G1", 12, 8), gameEvents("G2", 6, 9)...)

	builder := NewBuilder(testEncoder(), nil)
	table, err := builder.Build(context.Background(), events, windows)
	require.NoError(t, err)
	require.Len(t, table, 2)

	t.Run("outcomes follow the point differential", func(t *testing.T) {
		assert.Equal(t, 1, table[0].Outcome)
		assert.Equal(t, -1, table[1].Outcome)
	})

	t.Run("derived fields are populated", func(t *testing.T) {
		for _, m := range table {
			assert.Positive(t, m.PossHome)
			assert.Positive(t, m.PossVisitor)
			assert.False(t, math.IsNaN(m.Margin))
			assert.Len(t, m.Indicators, 10)
		}
	})

	t.Run("margins carry the sign of the scoring rates", func(t *testing.T) {
		assert.Positive(t, table[0].Margin)
		assert.Negative(t, table[1].Margin)
	})
}

func TestBuilderOutcomeTieGoesToVisitor(t *testing.T) {
	windows := []LineupWindow{
		{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
	}

	builder := NewBuilder(testEncoder(), nil)
	table, err := builder.Build(context.Background(), gameEvents("G1", 7, 7), windows)
	require.NoError(t, err)
	require.Len(t, table, 1)

	assert.Equal(t, -1, table[0].Outcome)
}

func TestBuilderDropsEmptyWindows(t *testing.T) {
	windows := []LineupWindow{
		{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
		// No event falls inside this stretch.
		{Game: "G1", StartingMin: 30, EndMin: 35, HomeLineup: homeRoster, AwayLineup: awayRoster},
	}

	builder := NewBuilder(testEncoder(), nil)
	table, err := builder.Build(context.Background(), gameEvents("G1", 10, 5), windows)
	require.NoError(t, err)

	assert.Len(t, table, 1)
}

func TestBuilderSkipsGameWithoutEvents(t *testing.T) {
	windows := []LineupWindow{
		{Game: "G-quiet", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
		{Game: "G-live", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
	}

	builder := NewBuilder(testEncoder(), nil)
	table, err := builder.Build(context.Background(), gameEvents("G-live", 9, 4), windows)
	require.NoError(t, err)

	require.Len(t, table, 1)
	assert.Equal(t, "G-live", table[0].Game)
}

// slowAggregator stalls on a designated game to force the per-game budget
// to expire.
type slowAggregator struct {
	slowGame string
	delay    time.Duration
	inner    BoxScoreAggregator
}

func (s slowAggregator) Aggregate(events []PlayByPlayEvent, w LineupWindow) (PerformanceVector, PerformanceVector, bool) {
	if w.Game == s.slowGame {
		time.Sleep(s.delay)
	}
	return s.inner.Aggregate(events, w)
}

func TestBuilderGameTimeout(t *testing.T) {
	windows := []LineupWindow{
		{Game: "G-slow", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
		{Game: "G-fast", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
	}
	events := append(gameEvents("G-slow", 10, 5), gameEvents("G-fast", 4, 8)...)

	builder := NewBuilder(testEncoder(), nil)
	builder.SetGameTimeout(20 * time.Millisecond)
	builder.SetPerformanceAggregator(slowAggregator{
		slowGame: "G-slow",
		delay:    100 * time.Millisecond,
	})

	table, err := builder.Build(context.Background(), events, windows)
	require.NoError(t, err)

	// The slow game is abandoned whole; the next game still processes.
	require.Len(t, table, 1)
	assert.Equal(t, "G-fast", table[0].Game)
}

func TestBuilderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	builder := NewBuilder(testEncoder(), nil)
	_, err := builder.Build(ctx, nil, []LineupWindow{
		{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster},
	})
	assert.Error(t, err)
}
