package adjusted

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchupRow builds a complete matchup over the shared ten-player rosters
// with the indicator row already encoded.
func matchupRow(enc *LineupEncoder, margin float64, outcome int) Matchup {
	w := LineupWindow{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster}
	return Matchup{
		LineupWindow: w,
		Margin:       margin,
		Outcome:      outcome,
		Indicators:   enc.Encode(w),
	}
}

func TestAttributorFit(t *testing.T) {
	enc := testEncoder()
	attributor := NewAttributor(DefaultRidgeAlpha, nil)

	t.Run("covers exactly the qualifying pool", func(t *testing.T) {
		table := []Matchup{
			matchupRow(enc, 4.2, 1),
			matchupRow(enc, -3.1, -1),
		}

		ratings, rated, err := attributor.Fit(context.Background(), table, enc.Pool())
		require.NoError(t, err)
		require.Len(t, rated, 2)

		assert.Len(t, ratings, 10)
		for _, p := range append(append([]string{}, homeRoster...), awayRoster...) {
			assert.Contains(t, ratings, p)
		}
	})

	t.Run("drops rows with NaN margin before fitting", func(t *testing.T) {
		table := []Matchup{
			matchupRow(enc, 2.0, 1),
			matchupRow(enc, math.NaN(), -1),
		}

		_, rated, err := attributor.Fit(context.Background(), table, enc.Pool())
		require.NoError(t, err)
		assert.Len(t, rated, 1)
	})

	t.Run("fails when nothing is complete", func(t *testing.T) {
		table := []Matchup{matchupRow(enc, math.NaN(), 1)}

		_, _, err := attributor.Fit(context.Background(), table, enc.Pool())
		assert.Error(t, err)
	})
}

func TestAttributorRatedRows(t *testing.T) {
	enc := testEncoder()
	attributor := NewAttributor(DefaultRidgeAlpha, nil)

	table := []Matchup{
		matchupRow(enc, 5.0, 1),
		matchupRow(enc, -5.0, -1),
	}

	ratings, rated, err := attributor.Fit(context.Background(), table, enc.Pool())
	require.NoError(t, err)
	require.Len(t, rated, 2)

	t.Run("slot ratings come from the rating table", func(t *testing.T) {
		for _, r := range rated {
			require.True(t, r.FullyRated())
			for i := 0; i < LineupSize; i++ {
				assert.Equal(t, ratings[r.Home[i].Player], r.Home[i].APM)
				assert.Equal(t, ratings[r.Visitor[i].Player], r.Visitor[i].APM)
			}
		}
	})

	t.Run("lineup aggregate is the home slot sum over five", func(t *testing.T) {
		for _, r := range rated {
			var sum float64
			for i := 0; i < LineupSize; i++ {
				sum += r.Home[i].APM
			}
			assert.InDelta(t, sum/5, r.LineupAPM, 1e-12)
		}
	})

	t.Run("outcome carries over", func(t *testing.T) {
		assert.Equal(t, 1, rated[0].Outcome)
		assert.Equal(t, -1, rated[1].Outcome)
	})
}

func TestAttributorMissingRatingOmitted(t *testing.T) {
	// Pool covers only part of the rosters: the other slots must end up
	// unrated, not zero-rated, and the aggregate still divides by five.
	enc := NewLineupEncoder(poolPlayers(500, "A", "B", "F"), 388)
	attributor := NewAttributor(DefaultRidgeAlpha, nil)

	w := LineupWindow{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: homeRoster, AwayLineup: awayRoster}
	table := []Matchup{{
		LineupWindow: w,
		Margin:       3.0,
		Outcome:      1,
		Indicators:   enc.Encode(w),
	}}

	ratings, rated, err := attributor.Fit(context.Background(), table, enc.Pool())
	require.NoError(t, err)
	require.Len(t, rated, 1)

	r := rated[0]
	assert.False(t, r.FullyRated())
	assert.True(t, r.Home[0].Rated)  // A
	assert.True(t, r.Home[1].Rated)  // B
	assert.False(t, r.Home[2].Rated) // C not in pool
	assert.True(t, r.Visitor[0].Rated)
	assert.False(t, r.Visitor[1].Rated)

	want := (ratings["A"] + ratings["B"]) / 5
	assert.InDelta(t, want, r.LineupAPM, 1e-12)
}

func TestAttributorRecoversSyntheticSignal(t *testing.T) {
	// Two players with opposite true impact, alternating lineups. The
	// fitted coefficients should separate them in the right order even
	// under shrinkage.
	players := poolPlayers(500, "plus", "minus", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12")
	enc := NewLineupEncoder(players, 388)

	lineupA := []string{"plus", "p3", "p4", "p5", "p6"}
	lineupB := []string{"minus", "p8", "p9", "p10", "p11"}
	wA := LineupWindow{Game: "G1", StartingMin: 0, EndMin: 5, HomeLineup: lineupA, AwayLineup: lineupB}
	wB := LineupWindow{Game: "G1", StartingMin: 5, EndMin: 10, HomeLineup: lineupB, AwayLineup: lineupA}

	var table []Matchup
	for i := 0; i < 50; i++ {
		table = append(table,
			Matchup{LineupWindow: wA, Margin: 8, Outcome: 1, Indicators: enc.Encode(wA)},
			Matchup{LineupWindow: wB, Margin: -8, Outcome: -1, Indicators: enc.Encode(wB)},
		)
	}

	attributor := NewAttributor(DefaultRidgeAlpha, nil)
	ratings, _, err := attributor.Fit(context.Background(), table, enc.Pool())
	require.NoError(t, err)

	assert.Greater(t, ratings["plus"], ratings["minus"])
	assert.Positive(t, ratings["plus"])
	assert.Negative(t, ratings["minus"])
}
