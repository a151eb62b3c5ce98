package adjusted

import (
	"sort"
)

// DefaultMinutesThreshold is the season minutes-played cutoff for a player
// to enter the qualifying pool and receive a rating.
const DefaultMinutesThreshold = 388

// LineupEncoder maps matchup rosters onto fixed-width signed indicator rows
// over the season's qualifying player pool. Players below the minutes
// threshold never become columns and are skipped silently when they appear
// in a roster.
type LineupEncoder struct {
	pool  []string
	index map[string]int
}

// NewLineupEncoder builds the qualifying pool from season player totals,
// keeping players whose minutes meet the threshold. Pool order is sorted by
// player identifier so indicator columns are stable across runs.
func NewLineupEncoder(players []PlayerSeason, minutesThreshold float64) *LineupEncoder {
	pool := make([]string, 0, len(players))
	for _, p := range players {
		if p.Minutes >= minutesThreshold {
			pool = append(pool, p.Player)
		}
	}
	sort.Strings(pool)

	index := make(map[string]int, len(pool))
	for i, name := range pool {
		index[name] = i
	}

	return &LineupEncoder{pool: pool, index: index}
}

// Pool returns the qualifying players in column order.
func (e *LineupEncoder) Pool() []string {
	return e.pool
}

// Size returns the indicator row width.
func (e *LineupEncoder) Size() int {
	return len(e.pool)
}

// Encode produces the signed indicator row for a matchup: +1 for each home
// player in the pool, -1 for each visitor player, 0 elsewhere. Roster
// players outside the pool contribute nothing.
func (e *LineupEncoder) Encode(w LineupWindow) []int8 {
	row := make([]int8, len(e.pool))
	for _, player := range w.HomeLineup {
		if i, ok := e.index[player]; ok {
			row[i] = 1
		}
	}
	for _, player := range w.AwayLineup {
		if i, ok := e.index[player]; ok {
			row[i] = -1
		}
	}
	return row
}
