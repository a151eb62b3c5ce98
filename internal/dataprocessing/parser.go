package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"lineupcli/internal/adjusted"
)

// ParsePlayByPlay reads the season play-by-play CSV. Expected columns:
// game, minute, home, pts, fga, fgm, fta, oreb, dreb, to. Column order is
// not assumed; positions are resolved from the header. Rows failing
// validation are skipped with a warning.
func ParsePlayByPlay(csvPath string, logger *slog.Logger) ([]adjusted.PlayByPlayEvent, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open play-by-play file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read play-by-play header: %w", err)
	}

	cols, err := mapColumns(header, []string{"game", "minute", "home", "pts", "fga", "fgm", "fta", "oreb", "dreb", "to"})
	if err != nil {
		return nil, fmt.Errorf("play-by-play header: %w", err)
	}

	var events []adjusted.PlayByPlayEvent
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed play-by-play row", "line", line, "error", err)
			skipped++
			continue
		}

		ev := adjusted.PlayByPlayEvent{
			Game:     record[cols["game"]],
			Minute:   parseFloat(record[cols["minute"]]),
			Home:     parseBool(record[cols["home"]]),
			Points:   parseFloat(record[cols["pts"]]),
			FGA:      parseFloat(record[cols["fga"]]),
			FGM:      parseFloat(record[cols["fgm"]]),
			FTA:      parseFloat(record[cols["fta"]]),
			OREB:     parseFloat(record[cols["oreb"]]),
			DREB:     parseFloat(record[cols["dreb"]]),
			Turnover: parseFloat(record[cols["to"]]),
		}
		if err := adjusted.ValidateEvent(ev); err != nil {
			logger.Warn("skipping invalid play-by-play row", "line", line, "error", err)
			skipped++
			continue
		}

		events = append(events, ev)
	}

	logger.Info("parsed play-by-play source",
		"path", csvPath,
		"events", len(events),
		"skipped", skipped,
	)

	return events, nil
}

// ParseLineupWindows reads the raw substitution-window CSV. Expected
// columns: game, starting_min, end_min, home_0..home_4,
// visitor_0..visitor_4. Invalid windows (wrong roster size, duplicate or
// cross-side players, inverted time range) are dropped with a warning
// rather than carried forward: the encoder downstream assumes every window
// it sees has five distinct players per side.
func ParseLineupWindows(csvPath string, logger *slog.Logger) ([]adjusted.LineupWindow, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open matchups file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read matchups header: %w", err)
	}

	wanted := []string{"game", "starting_min", "end_min"}
	for i := 0; i < adjusted.LineupSize; i++ {
		wanted = append(wanted, fmt.Sprintf("home_%d", i))
	}
	for i := 0; i < adjusted.LineupSize; i++ {
		wanted = append(wanted, fmt.Sprintf("visitor_%d", i))
	}
	cols, err := mapColumns(header, wanted)
	if err != nil {
		return nil, fmt.Errorf("matchups header: %w", err)
	}

	var windows []adjusted.LineupWindow
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed matchup row", "line", line, "error", err)
			skipped++
			continue
		}

		w := adjusted.LineupWindow{
			Game:        record[cols["game"]],
			StartingMin: parseFloat(record[cols["starting_min"]]),
			EndMin:      parseFloat(record[cols["end_min"]]),
			HomeLineup:  make([]string, adjusted.LineupSize),
			AwayLineup:  make([]string, adjusted.LineupSize),
		}
		for i := 0; i < adjusted.LineupSize; i++ {
			w.HomeLineup[i] = record[cols[fmt.Sprintf("home_%d", i)]]
			w.AwayLineup[i] = record[cols[fmt.Sprintf("visitor_%d", i)]]
		}

		if err := adjusted.ValidateWindow(w); err != nil {
			logger.Warn("skipping invalid matchup row", "line", line, "error", err)
			skipped++
			continue
		}

		windows = append(windows, w)
	}

	logger.Info("parsed matchup source",
		"path", csvPath,
		"windows", len(windows),
		"skipped", skipped,
	)

	return windows, nil
}

// ParsePlayerSeasons reads season player totals. Expected columns:
// player, mp.
func ParsePlayerSeasons(csvPath string, logger *slog.Logger) ([]adjusted.PlayerSeason, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open players file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read players header: %w", err)
	}

	cols, err := mapColumns(header, []string{"player", "mp"})
	if err != nil {
		return nil, fmt.Errorf("players header: %w", err)
	}

	var players []adjusted.PlayerSeason
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || record[cols["player"]] == "" {
			skipped++
			continue
		}

		players = append(players, adjusted.PlayerSeason{
			Player:  record[cols["player"]],
			Minutes: parseFloat(record[cols["mp"]]),
		})
	}

	logger.Info("parsed player source",
		"path", csvPath,
		"players", len(players),
		"skipped", skipped,
	)

	return players, nil
}

// mapColumns resolves required column names to their header positions.
func mapColumns(header []string, wanted []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	cols := make(map[string]int, len(wanted))
	for _, name := range wanted {
		idx, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseBool(s string) bool {
	switch s {
	case "1", "true", "True", "TRUE":
		return true
	default:
		return false
	}
}
