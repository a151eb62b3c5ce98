package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"lineupcli/internal/adjusted"
	pipeerrors "lineupcli/internal/errors"
)

// SeasonData holds the three parsed tabular sources for one season.
type SeasonData struct {
	Events  []adjusted.PlayByPlayEvent
	Windows []adjusted.LineupWindow
	Players []adjusted.PlayerSeason
}

// LoadSeason parses the play-by-play, substitution-window and
// player-minutes CSVs concurrently. Any unreadable source is a fatal
// setup error; the per-game pipeline never starts on partial inputs.
func LoadSeason(ctx context.Context, pbpPath, matchupsPath, playersPath string, logger *slog.Logger) (*SeasonData, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var data SeasonData
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := ParsePlayByPlay(pbpPath, logger)
		if err != nil {
			return pipeerrors.Fatal("load", err)
		}
		data.Events = events
		return nil
	})
	g.Go(func() error {
		windows, err := ParseLineupWindows(matchupsPath, logger)
		if err != nil {
			return pipeerrors.Fatal("load", err)
		}
		data.Windows = windows
		return nil
	})
	g.Go(func() error {
		players, err := ParsePlayerSeasons(playersPath, logger)
		if err != nil {
			return pipeerrors.Fatal("load", err)
		}
		data.Players = players
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(data.Windows) == 0 {
		return nil, pipeerrors.Fatal("load", fmt.Errorf("%w: %s", pipeerrors.ErrNoData, matchupsPath))
	}
	if len(data.Players) == 0 {
		return nil, pipeerrors.Fatal("load", fmt.Errorf("%w: %s", pipeerrors.ErrNoData, playersPath))
	}

	return &data, nil
}
