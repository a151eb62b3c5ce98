package adjusted

import (
	"math"
)

// LineupSize is the number of players each side has on court during a
// five-on-five segment.
const LineupSize = 5

// Side identifies which team a stat line or possession estimate belongs to.
type Side int

const (
	// Home is the home team side
	Home Side = iota
	// Visitor is the visiting team side
	Visitor
)

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Visitor:
		return "visitor"
	default:
		return "unknown"
	}
}

// PlayByPlayEvent is a single in-game event with its box-score increments.
// Events are immutable and sourced from the season play-by-play CSV.
type PlayByPlayEvent struct {
	Game     string  `json:"game"`
	Minute   float64 `json:"minute"`
	Home     bool    `json:"home"`
	Points   float64 `json:"pts"`
	FGA      float64 `json:"fga"`
	FGM      float64 `json:"fgm"`
	FTA      float64 `json:"fta"`
	OREB     float64 `json:"oreb"`
	DREB     float64 `json:"dreb"`
	Turnover float64 `json:"to"`
}

// LineupWindow is one contiguous five-on-five stretch: the raw substitution
// record before any performance or possession enrichment.
type LineupWindow struct {
	Game        string   `json:"game" validate:"required"`
	StartingMin float64  `json:"starting_min" validate:"gte=0"`
	EndMin      float64  `json:"end_min" validate:"gtefield=StartingMin"`
	HomeLineup  []string `json:"home_lineup" validate:"len=5,unique,dive,required"`
	AwayLineup  []string `json:"away_lineup" validate:"len=5,unique,dive,required"`
}

// PerformanceVector holds aggregated box-score totals for one side over a
// lineup window.
type PerformanceVector struct {
	Points   float64
	FGA      float64
	FGM      float64
	FTA      float64
	OREB     float64
	DREB     float64
	Turnover float64
}

// Add accumulates one event's increments into the vector.
func (p *PerformanceVector) Add(ev PlayByPlayEvent) {
	p.Points += ev.Points
	p.FGA += ev.FGA
	p.FGM += ev.FGM
	p.FTA += ev.FTA
	p.OREB += ev.OREB
	p.DREB += ev.DREB
	p.Turnover += ev.Turnover
}

// IsZero reports whether no events contributed to the vector.
func (p PerformanceVector) IsZero() bool {
	return p.Points == 0 && p.FGA == 0 && p.FGM == 0 && p.FTA == 0 &&
		p.OREB == 0 && p.DREB == 0 && p.Turnover == 0
}

// Matchup is the enriched working unit: a lineup window with both sides'
// performance totals and the derived possession, margin, outcome and
// indicator fields. Produced by the Builder, consumed by the Attributor.
type Matchup struct {
	LineupWindow

	HomePerf    PerformanceVector
	VisitorPerf PerformanceVector

	PossHome    float64
	PossVisitor float64

	// Margin is the per-possession scoring differential scaled by 100.
	// NaN when neither side had an estimable possession.
	Margin float64

	// Outcome is +1 when the home side outscored the visitor over the
	// window, -1 otherwise (ties included).
	Outcome int

	// Indicators is the signed player-presence row aligned to the
	// encoder's qualifying pool: +1 home, -1 visitor, 0 absent.
	Indicators []int8
}

// Complete reports whether the row can enter the ridge design matrix.
// The margin must be finite: NaN marks a row with no possession
// estimate, and an infinite value would dominate the normal equations.
func (m Matchup) Complete() bool {
	return !math.IsNaN(m.Margin) && !math.IsInf(m.Margin, 0) && len(m.Indicators) > 0
}

// PlayerSeason is one player's season totals, used to build the qualifying
// pool via the minutes-played threshold.
type PlayerSeason struct {
	Player  string  `json:"player" validate:"required"`
	Minutes float64 `json:"mp" validate:"gte=0"`
}

// PlayerRatings maps player identifiers to their ridge coefficients. Built
// once per season and immutable afterward.
type PlayerRatings map[string]float64

// SlotRating is one roster slot of a rated matchup: the player identifier
// and, when the player was in the season's rating table, the adjusted
// plus-minus attributed to them.
type SlotRating struct {
	Player string
	APM    float64
	Rated  bool
}

// RatedMatchup is the final per-segment artifact: per-slot ratings for both
// lineups, the aggregate home lineup rating, and the outcome label.
type RatedMatchup struct {
	Game      string
	Home      [LineupSize]SlotRating
	Visitor   [LineupSize]SlotRating
	LineupAPM float64
	Outcome   int
}

// FullyRated reports whether every roster slot resolved to a rating, which
// the outcome trainer requires of its feature rows.
func (r RatedMatchup) FullyRated() bool {
	for i := 0; i < LineupSize; i++ {
		if !r.Home[i].Rated || !r.Visitor[i].Rated {
			return false
		}
	}
	return true
}
