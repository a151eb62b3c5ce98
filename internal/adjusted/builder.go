package adjusted

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pipeerrors "lineupcli/internal/errors"
)

// DefaultGameTimeout bounds the wall-clock cost of sequencing a single
// game. Pathological games (abnormally dense substitution patterns) are
// abandoned rather than allowed to stall the season run.
const DefaultGameTimeout = 30 * time.Second

// Builder reconstructs the season matchup table: one enriched row per
// five-on-five segment, derived from the play-by-play stream and the raw
// substitution windows. Games are processed one at a time; a game that
// times out or fails contributes no rows and the run continues.
type Builder struct {
	encoder     *LineupEncoder
	perf        PerformanceAggregator
	gameTimeout time.Duration
	logger      *slog.Logger
}

// NewBuilder creates a Builder over the given qualifying-pool encoder.
func NewBuilder(encoder *LineupEncoder, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		encoder:     encoder,
		perf:        BoxScoreAggregator{},
		gameTimeout: DefaultGameTimeout,
		logger:      logger,
	}
}

// SetGameTimeout overrides the per-game wall-clock budget.
func (b *Builder) SetGameTimeout(d time.Duration) {
	b.gameTimeout = d
}

// SetPerformanceAggregator substitutes the stat-aggregation collaborator.
func (b *Builder) SetPerformanceAggregator(p PerformanceAggregator) {
	b.perf = p
}

// Build processes every game found in the substitution windows, in first
// appearance order, and returns the season-wide matchup table. Per-game
// failures and timeouts are logged and skipped; Build itself only fails
// when the outer context is cancelled.
func (b *Builder) Build(ctx context.Context, events []PlayByPlayEvent, windows []LineupWindow) ([]Matchup, error) {
	start := time.Now()

	eventsByGame := make(map[string][]PlayByPlayEvent)
	for _, ev := range events {
		eventsByGame[ev.Game] = append(eventsByGame[ev.Game], ev)
	}

	windowsByGame := make(map[string][]LineupWindow)
	var gameOrder []string
	for _, w := range windows {
		if _, seen := windowsByGame[w.Game]; !seen {
			gameOrder = append(gameOrder, w.Game)
		}
		windowsByGame[w.Game] = append(windowsByGame[w.Game], w)
	}

	b.logger.InfoContext(ctx, "building season matchup table",
		"games", len(gameOrder),
		"windows", len(windows),
		"events", len(events),
		"game_timeout", b.gameTimeout,
	)

	var table []Matchup
	skipped := 0
	for _, game := range gameOrder {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("season build cancelled: %w", err)
		}

		rows, err := b.buildGame(ctx, game, eventsByGame[game], windowsByGame[game])
		if err != nil {
			// Game isolation: drop every row of the offending game
			// and keep going with the rest of the season.
			b.logger.WarnContext(ctx, "game sequencing failed, skipping",
				"game", game,
				"error", err,
			)
			skipped++
			continue
		}

		table = append(table, rows...)
	}

	b.logger.InfoContext(ctx, "season matchup table complete",
		"rows", len(table),
		"games_skipped", skipped,
		"duration", time.Since(start),
	)

	return table, nil
}

// buildGame runs the strictly sequential per-game pipeline under the game
// budget: aggregate performance per window, label outcomes, estimate
// possessions, compute game-joint margins, encode lineups.
func (b *Builder) buildGame(ctx context.Context, game string, events []PlayByPlayEvent, windows []LineupWindow) ([]Matchup, error) {
	gameCtx, cancel := context.WithTimeout(ctx, b.gameTimeout)
	defer cancel()

	rows := make([]Matchup, 0, len(windows))
	for _, w := range windows {
		if err := gameCtx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", pipeerrors.ErrGameTimeout, err)
		}

		home, visitor, ok := b.perf.Aggregate(events, w)
		if !ok {
			// No events landed in the window; the row carries no
			// signal and is dropped, not the game.
			continue
		}

		m := Matchup{
			LineupWindow: w,
			HomePerf:     home,
			VisitorPerf:  visitor,
			Outcome:      -1,
		}
		if home.Points-visitor.Points > 0 {
			m.Outcome = 1
		}

		m.PossHome = EstimatePossessions(home, visitor)
		m.PossVisitor = EstimatePossessions(visitor, home)

		rows = append(rows, m)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	if err := gameCtx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeerrors.ErrGameTimeout, err)
	}

	// Margins need the whole game's possession totals for the fallback
	// rates, so they run after every window is enriched.
	for i, margin := range Margins(rows) {
		rows[i].Margin = margin
	}

	for i := range rows {
		rows[i].Indicators = b.encoder.Encode(rows[i].LineupWindow)
	}

	b.logger.DebugContext(ctx, "game sequenced",
		"game", game,
		"rows", len(rows),
		"windows", len(windows),
	)

	return rows, nil
}
