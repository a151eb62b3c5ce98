package adjusted

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var windowValidator = validator.New()

// ValidateWindow checks a raw substitution window at ingestion: exactly
// five distinct players per side, no player on both sides, and a
// non-inverted time range. Windows failing validation are dropped by the
// loader with a warning; they never reach the builder, so the encoder
// cannot see a player on both rosters of the same record.
func ValidateWindow(w LineupWindow) error {
	if err := windowValidator.Struct(w); err != nil {
		return fmt.Errorf("window %s [%g, %g]: %w", w.Game, w.StartingMin, w.EndMin, err)
	}

	home := make(map[string]struct{}, LineupSize)
	for _, p := range w.HomeLineup {
		home[p] = struct{}{}
	}
	for _, p := range w.AwayLineup {
		if _, ok := home[p]; ok {
			return fmt.Errorf("window %s [%g, %g]: player %q on both rosters", w.Game, w.StartingMin, w.EndMin, p)
		}
	}

	return nil
}

// ValidateEvent checks a play-by-play row for negative box-score
// increments, which indicate a corrupted source row.
func ValidateEvent(ev PlayByPlayEvent) error {
	if ev.Game == "" {
		return fmt.Errorf("event missing game id")
	}
	if ev.Minute < 0 {
		return fmt.Errorf("event in game %s: negative minute %g", ev.Game, ev.Minute)
	}
	for name, v := range map[string]float64{
		"pts":  ev.Points,
		"fga":  ev.FGA,
		"fgm":  ev.FGM,
		"fta":  ev.FTA,
		"oreb": ev.OREB,
		"dreb": ev.DREB,
		"to":   ev.Turnover,
	} {
		if v < 0 {
			return fmt.Errorf("event in game %s at minute %g: negative %s", ev.Game, ev.Minute, name)
		}
	}
	return nil
}
