package adjusted

import (
	"math"
)

// marginScale expresses margins per 100 possessions.
const marginScale = 100.0

// Margins computes the per-possession scoring margin for every matchup of a
// single game, in input order. A side with zero estimated possessions falls
// back to the game-average scoring rate for that side; when neither side
// has possessions the margin is NaN and the row is later excluded from the
// ridge fit.
//
// The fallback rates are computed jointly over the whole game, so callers
// must pass every surviving matchup of the game at once.
func Margins(records []Matchup) []float64 {
	var homePts, homePoss, awayPts, awayPoss float64
	for _, m := range records {
		homePts += m.HomePerf.Points
		homePoss += m.PossHome
		awayPts += m.VisitorPerf.Points
		awayPoss += m.PossVisitor
	}
	// A side that never records a possession across the whole game has no
	// meaningful average rate; NaN here keeps a fallback row from turning
	// into an infinite margin when the side still scored points.
	homeAvg := math.NaN()
	if homePoss > 0 {
		homeAvg = homePts / homePoss
	}
	awayAvg := math.NaN()
	if awayPoss > 0 {
		awayAvg = awayPts / awayPoss
	}

	margins := make([]float64, 0, len(records))
	for _, m := range records {
		if m.PossHome == 0 && m.PossVisitor == 0 {
			margins = append(margins, math.NaN())
			continue
		}

		homeRate := homeAvg
		if m.PossHome > 0 {
			homeRate = m.HomePerf.Points / m.PossHome
		}
		awayRate := awayAvg
		if m.PossVisitor > 0 {
			awayRate = m.VisitorPerf.Points / m.PossVisitor
		}

		margins = append(margins, marginScale*(homeRate-awayRate))
	}

	return margins
}
