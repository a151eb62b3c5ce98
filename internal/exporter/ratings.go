package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"lineupcli/internal/adjusted"
)

// RatingsWriter exports the season rating table as analyst-facing
// artifacts: a CSV and an Excel workbook, both ordered from highest to
// lowest adjusted rating.
type RatingsWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewRatingsWriter creates a writer rooted at outputDir.
func NewRatingsWriter(outputDir string, logger *slog.Logger) *RatingsWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingsWriter{outputDir: outputDir, logger: logger}
}

// WriteCSV writes the rating table to ratings-<year>.csv.
func (w *RatingsWriter) WriteCSV(ratings adjusted.PlayerRatings, year int) (string, error) {
	if len(ratings) == 0 {
		return "", fmt.Errorf("no ratings to export")
	}

	outputPath := filepath.Join(w.outputDir, fmt.Sprintf("ratings-%d.csv", year))
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create ratings CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"rank", "player", "apm"}); err != nil {
		return "", fmt.Errorf("write ratings header: %w", err)
	}

	for i, p := range rankedPlayers(ratings) {
		record := []string{
			strconv.Itoa(i + 1),
			p,
			strconv.FormatFloat(ratings[p], 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write ratings record: %w", err)
		}
	}

	w.logger.Info("wrote ratings CSV", "path", outputPath, "players", len(ratings))
	return outputPath, nil
}

// WriteExcel writes the rating table to ratings-<year>.xlsx with a single
// Ratings sheet.
func (w *RatingsWriter) WriteExcel(ratings adjusted.PlayerRatings, year int) (string, error) {
	if len(ratings) == 0 {
		return "", fmt.Errorf("no ratings to export")
	}

	outputPath := filepath.Join(w.outputDir, fmt.Sprintf("ratings-%d.xlsx", year))
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ratings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("create ratings sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("remove default sheet: %w", err)
	}

	for col, name := range []string{"Rank", "Player", "APM"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return "", fmt.Errorf("write sheet header: %w", err)
		}
	}

	for i, p := range rankedPlayers(ratings) {
		row := i + 2
		cells := []struct {
			col   int
			value interface{}
		}{
			{1, i + 1},
			{2, p},
			{3, ratings[p]},
		}
		for _, c := range cells {
			cell, _ := excelize.CoordinatesToCellName(c.col, row)
			if err := f.SetCellValue(sheet, cell, c.value); err != nil {
				return "", fmt.Errorf("write rating row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("save ratings workbook: %w", err)
	}

	w.logger.Info("wrote ratings workbook", "path", outputPath, "players", len(ratings))
	return outputPath, nil
}

// rankedPlayers orders players by descending rating, ties by identifier.
func rankedPlayers(ratings adjusted.PlayerRatings) []string {
	players := make([]string, 0, len(ratings))
	for p := range ratings {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if ratings[players[i]] == ratings[players[j]] {
			return players[i] < players[j]
		}
		return ratings[players[i]] > ratings[players[j]]
	})
	return players
}
