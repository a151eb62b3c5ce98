package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"lineupcli/internal/adjusted"
	"lineupcli/internal/config"
	"lineupcli/internal/dataprocessing"
	"lineupcli/internal/exporter"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	year := flag.Int("year", 0, "season year (overrides config)")
	dataDir := flag.String("data", "", "input data directory (overrides config)")
	outputDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *year != 0 {
		cfg.Season.Year = *year
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
	}
	// Flag overrides land after Load's own check, so the merged result
	// has to pass validation again.
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging).With("run_id", uuid.New().String(), "season", cfg.Season.Year)
	slog.SetDefault(logger)

	// The outcome model is resolved before any data is read: an unknown
	// model name must fail the run at setup, not after the build stage.
	fitter, err := adjusted.NewFitter(cfg.Training.Model, cfg.Ridge.Alpha)
	if err != nil {
		logger.Error("Failed to resolve outcome model", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	logger.Info("Loading season sources",
		"pbp", cfg.PBPFile(),
		"matchups", cfg.MatchupsFile(),
		"players", cfg.PlayersFile(),
	)
	data, err := dataprocessing.LoadSeason(ctx, cfg.PBPFile(), cfg.MatchupsFile(), cfg.PlayersFile(), logger)
	if err != nil {
		logger.Error("Failed to load season sources", "error", err)
		os.Exit(1)
	}

	encoder := adjusted.NewLineupEncoder(data.Players, cfg.Pipeline.MinutesThreshold)
	logger.Info("Built qualifying player pool",
		"pool_size", encoder.Size(),
		"minutes_threshold", cfg.Pipeline.MinutesThreshold,
	)

	builder := adjusted.NewBuilder(encoder, logger)
	builder.SetGameTimeout(cfg.Pipeline.GameTimeout)

	table, err := builder.Build(ctx, data.Events, data.Windows)
	if err != nil {
		logger.Error("Season build failed", "error", err)
		os.Exit(1)
	}
	if err := adjusted.SaveMatchupsCSV(table, encoder.Pool(), cfg.AdjustedFile()); err != nil {
		logger.Error("Failed to save matchup table", "error", err)
		os.Exit(1)
	}
	logger.Info("Saved matchup table", "path", cfg.AdjustedFile(), "rows", len(table))

	attributor := adjusted.NewAttributor(cfg.Ridge.Alpha, logger)
	ratings, rated, err := attributor.Fit(ctx, table, encoder.Pool())
	if err != nil {
		logger.Error("Rating fit failed", "error", err)
		os.Exit(1)
	}
	if err := adjusted.SaveRatedCSV(rated, cfg.RegressedFile()); err != nil {
		logger.Error("Failed to save rated table", "error", err)
		os.Exit(1)
	}
	logger.Info("Saved rated table", "path", cfg.RegressedFile(), "rows", len(rated))

	ratingsWriter := exporter.NewRatingsWriter(cfg.Paths.OutputDir, logger)
	if _, err := ratingsWriter.WriteCSV(ratings, cfg.Season.Year); err != nil {
		logger.Error("Failed to export ratings CSV", "error", err)
		os.Exit(1)
	}
	if _, err := ratingsWriter.WriteExcel(ratings, cfg.Season.Year); err != nil {
		logger.Error("Failed to export ratings workbook", "error", err)
		os.Exit(1)
	}
	summaryPath := filepath.Join(cfg.Paths.OutputDir, fmt.Sprintf("ratings-summary-%d.txt", cfg.Season.Year))
	if err := adjusted.SaveRatingSummary(ratings, summaryPath); err != nil {
		logger.Error("Failed to save rating summary", "error", err)
		os.Exit(1)
	}

	trainer, err := adjusted.NewTrainer(fitter, cfg.Training.Split, cfg.Training.EvenClasses, cfg.Training.Seed, logger)
	if err != nil {
		logger.Error("Failed to configure trainer", "error", err)
		os.Exit(1)
	}
	result, err := trainer.Train(ctx, rated)
	if err != nil {
		logger.Error("Outcome training failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Pipeline complete",
		"matchup_rows", len(table),
		"rated_rows", len(rated),
		"pool_size", encoder.Size(),
		"train_rows", result.Train.Len(),
		"validation_rows", result.Validation.Len(),
		"train_accuracy", adjusted.Accuracy(result.Model, result.Train),
		"validation_accuracy", adjusted.Accuracy(result.Model, result.Validation),
	)
}

// newLogger builds the root logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
