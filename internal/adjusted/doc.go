// Package adjusted implements the adjusted lineup rating pipeline: it
// reconstructs five-on-five matchup segments from play-by-play events and
// substitution windows, estimates per-possession scoring margins, fits a
// ridge regression that decomposes segment margins into individual player
// ratings, and trains an outcome model over the rating-augmented segments.
//
// The pipeline is a strictly sequential batch run. Stages are:
//
//  1. Builder.Build sequences each game under a wall-clock budget,
//     producing one Matchup row per surviving substitution window with
//     performance totals, possession estimates, margins, outcome labels
//     and signed lineup indicator encodings.
//  2. Attributor.Fit drops incomplete rows, regresses margin on the
//     indicator matrix and reattaches per-player and per-lineup rating
//     columns, yielding the PlayerRatings table and RatedMatchup rows.
//  3. Trainer.Train partitions the rated rows, optionally balances the
//     outcome classes, and fits the configured model.
//
// Failure policy: per-game timeouts and malformed rows are logged and
// skipped; only setup-time problems (bad configuration, unresolvable
// model, fewer than one complete row) surface as errors.
package adjusted
