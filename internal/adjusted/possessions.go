package adjusted

// Possession formula coefficients. The 0.4 free-throw weight and the 1.07
// offensive-rebound credit are the standard box-score possession estimate
// constants.
const (
	ftaWeight  = 0.4
	orebWeight = 1.07
)

// EstimatePossessions estimates the number of possessions a side had over a
// matchup window from both sides' aggregated box-score totals. The estimate
// averages the two teams' raw possession counts, so it is symmetric: either
// side's call yields the same value for a given pair of stat lines.
//
// When a rebound denominator is zero the estimate is defined as 0 rather
// than an error; a window with no rebounds on either side carries no usable
// possession signal and the margin stage falls back to game averages.
func EstimatePossessions(side, opp PerformanceVector) float64 {
	sideReb := side.OREB + opp.DREB
	oppReb := opp.OREB + side.DREB
	if sideReb == 0 || oppReb == 0 {
		return 0
	}

	sideRaw := side.FGA + ftaWeight*side.FTA -
		orebWeight*(side.OREB/sideReb)*(side.FGA-side.FGM) +
		side.Turnover
	oppRaw := opp.FGA + ftaWeight*opp.FTA -
		orebWeight*(opp.OREB/oppReb)*(opp.FGA-opp.FGM) +
		opp.Turnover

	return 0.5 * (sideRaw + oppRaw)
}
