package adjusted

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultRidgeAlpha is the regularization strength of the rating fit.
const DefaultRidgeAlpha = 1.0

// Attributor decomposes team-level segment margins into individual player
// ratings via ridge regression over the signed indicator rows, then
// reattaches the ratings to every segment.
type Attributor struct {
	alpha  float64
	logger *slog.Logger
}

// NewAttributor creates an Attributor with the given regularization
// strength.
func NewAttributor(alpha float64, logger *slog.Logger) *Attributor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Attributor{alpha: alpha, logger: logger}
}

// Fit drops incomplete rows, fits margin against the indicator matrix and
// returns the season rating table alongside the rated segments. Pool must
// be the encoder pool the table was built with, in column order.
func (a *Attributor) Fit(ctx context.Context, table []Matchup, pool []string) (PlayerRatings, []RatedMatchup, error) {
	start := time.Now()

	// Ridge regression needs a complete design matrix: rows with a NaN
	// margin or no indicator encoding are excluded up front.
	complete := make([]Matchup, 0, len(table))
	for _, m := range table {
		if m.Complete() {
			complete = append(complete, m)
		}
	}

	a.logger.InfoContext(ctx, "fitting player ratings",
		"rows", len(complete),
		"dropped", len(table)-len(complete),
		"players", len(pool),
		"alpha", a.alpha,
	)

	if len(complete) == 0 {
		return nil, nil, fmt.Errorf("no complete matchup rows to fit")
	}

	x := make([][]float64, len(complete))
	y := make([]float64, len(complete))
	for i, m := range complete {
		row := make([]float64, len(pool))
		for j, v := range m.Indicators {
			row[j] = float64(v)
		}
		x[i] = row
		y[i] = m.Margin
	}

	model, err := RidgeRegression{Alpha: a.alpha}.Fit(x, y)
	if err != nil {
		return nil, nil, fmt.Errorf("rating regression: %w", err)
	}
	coef := model.(*LinearModel).Coefficients

	ratings := make(PlayerRatings, len(pool))
	for i, player := range pool {
		ratings[player] = coef[i]
	}

	rated := make([]RatedMatchup, 0, len(complete))
	for _, m := range complete {
		rated = append(rated, a.rate(m, ratings))
	}

	a.logger.InfoContext(ctx, "player ratings fitted",
		"rated_rows", len(rated),
		"duration", time.Since(start),
	)

	return ratings, rated, nil
}

// rate reattaches per-slot ratings to one segment. A roster player missing
// from the rating table leaves the slot unrated rather than failing the
// row. The lineup aggregate always divides by the full lineup size.
func (a *Attributor) rate(m Matchup, ratings PlayerRatings) RatedMatchup {
	r := RatedMatchup{
		Game:    m.Game,
		Outcome: m.Outcome,
	}

	var homeSum float64
	for i := 0; i < LineupSize; i++ {
		r.Home[i].Player = m.HomeLineup[i]
		if apm, ok := ratings[m.HomeLineup[i]]; ok {
			r.Home[i].APM = apm
			r.Home[i].Rated = true
			homeSum += apm
		}

		r.Visitor[i].Player = m.AwayLineup[i]
		if apm, ok := ratings[m.AwayLineup[i]]; ok {
			r.Visitor[i].APM = apm
			r.Visitor[i].Rated = true
		}
	}
	r.LineupAPM = homeSum / LineupSize

	return r
}
