package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the immutable season-scoped run configuration. It is loaded
// once at startup and passed to each pipeline component at construction;
// nothing reads configuration ambiently after that.
type Config struct {
	Season   SeasonConfig   `yaml:"season" envconfig:"SEASON"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Ridge    RidgeConfig    `yaml:"ridge" envconfig:"RIDGE"`
	Training TrainingConfig `yaml:"training" envconfig:"TRAINING"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// SeasonConfig identifies the season whose files the run consumes.
type SeasonConfig struct {
	Year int `yaml:"year" envconfig:"YEAR" default:"2016" validate:"gte=1946"`
}

// PathsConfig locates the input and output directories. Input file names
// are derived from the season year: pbp-<year>.csv, matchups-<year>.csv,
// players-<year>.csv.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/output" validate:"required"`
}

// PipelineConfig tunes the matchup reconstruction stage.
type PipelineConfig struct {
	// GameTimeout bounds wall-clock time spent sequencing one game.
	GameTimeout time.Duration `yaml:"game_timeout" envconfig:"GAME_TIMEOUT" default:"30s" validate:"gt=0"`
	// MinutesThreshold is the season minutes-played floor for a player
	// to enter the qualifying rating pool.
	MinutesThreshold float64 `yaml:"minutes_threshold" envconfig:"MINUTES_THRESHOLD" default:"388" validate:"gte=0"`
}

// RidgeConfig tunes the rating regression.
type RidgeConfig struct {
	Alpha float64 `yaml:"alpha" envconfig:"ALPHA" default:"1.0" validate:"gte=0"`
}

// TrainingConfig tunes the outcome model stage.
type TrainingConfig struct {
	// Model selects the fitting capability: ridge, linear or logistic.
	Model string `yaml:"model" envconfig:"MODEL" default:"logistic" validate:"oneof=ridge linear logistic"`
	// Split is the validation holdout fraction.
	Split float64 `yaml:"split" envconfig:"SPLIT" default:"0.25" validate:"gt=0,lt=1"`
	// EvenClasses subsamples the majority outcome class so both labels
	// appear equally often in each partition.
	EvenClasses bool `yaml:"even_classes" envconfig:"EVEN_CLASSES" default:"false"`
	// Seed pins the split randomness; 0 derives it from the wall clock.
	Seed int64 `yaml:"seed" envconfig:"SEED" default:"0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load builds the configuration from environment variables (prefix LINEUP)
// layered over an optional YAML file. Environment values take precedence.
// Any validation failure here is fatal: configuration problems abort the
// run before any data is touched.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LINEUP", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge overlays the file config on the env config. envconfig fills
// struct-tag defaults even when a variable is unset, so a zero check on
// the env side cannot tell "defaulted" from "explicitly set"; instead a
// file value wins whenever the file provided one and the corresponding
// environment variable is absent. Precedence: env > file > defaults.
func merge(fileCfg, envCfg Config) Config {
	if fileCfg.Season.Year != 0 && !envSet("SEASON_YEAR") {
		envCfg.Season.Year = fileCfg.Season.Year
	}
	if fileCfg.Paths.DataDir != "" && !envSet("PATHS_DATA_DIR") {
		envCfg.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if fileCfg.Paths.OutputDir != "" && !envSet("PATHS_OUTPUT_DIR") {
		envCfg.Paths.OutputDir = fileCfg.Paths.OutputDir
	}
	if fileCfg.Pipeline.GameTimeout != 0 && !envSet("PIPELINE_GAME_TIMEOUT") {
		envCfg.Pipeline.GameTimeout = fileCfg.Pipeline.GameTimeout
	}
	if fileCfg.Pipeline.MinutesThreshold != 0 && !envSet("PIPELINE_MINUTES_THRESHOLD") {
		envCfg.Pipeline.MinutesThreshold = fileCfg.Pipeline.MinutesThreshold
	}
	if fileCfg.Ridge.Alpha != 0 && !envSet("RIDGE_ALPHA") {
		envCfg.Ridge.Alpha = fileCfg.Ridge.Alpha
	}
	if fileCfg.Training.Model != "" && !envSet("TRAINING_MODEL") {
		envCfg.Training.Model = fileCfg.Training.Model
	}
	if fileCfg.Training.Split != 0 && !envSet("TRAINING_SPLIT") {
		envCfg.Training.Split = fileCfg.Training.Split
	}
	if fileCfg.Training.Seed != 0 && !envSet("TRAINING_SEED") {
		envCfg.Training.Seed = fileCfg.Training.Seed
	}
	if fileCfg.Training.EvenClasses && !envSet("TRAINING_EVEN_CLASSES") {
		envCfg.Training.EvenClasses = true
	}
	if fileCfg.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		envCfg.Logging.Format = fileCfg.Logging.Format
	}
	return envCfg
}

// envSet reports whether the prefixed environment variable is present.
func envSet(suffix string) bool {
	_, ok := os.LookupEnv("LINEUP_" + suffix)
	return ok
}

var configValidator = validator.New()

// Validate checks the configuration's constraints. Load runs it
// automatically; callers that mutate a loaded config afterward, such as
// command-line overrides, must call it again.
func (c *Config) Validate() error {
	return configValidator.Struct(c)
}

// PBPFile returns the season play-by-play CSV path.
func (c *Config) PBPFile() string {
	return filepath.Join(c.Paths.DataDir, fmt.Sprintf("pbp-%d.csv", c.Season.Year))
}

// MatchupsFile returns the season substitution-window CSV path.
func (c *Config) MatchupsFile() string {
	return filepath.Join(c.Paths.DataDir, fmt.Sprintf("matchups-%d.csv", c.Season.Year))
}

// PlayersFile returns the season player-minutes CSV path.
func (c *Config) PlayersFile() string {
	return filepath.Join(c.Paths.DataDir, fmt.Sprintf("players-%d.csv", c.Season.Year))
}

// AdjustedFile returns the stage-one output path (matchup table).
func (c *Config) AdjustedFile() string {
	return filepath.Join(c.Paths.OutputDir, fmt.Sprintf("matchups-adjusted-%d.csv", c.Season.Year))
}

// RegressedFile returns the stage-two output path (rated matchup table).
func (c *Config) RegressedFile() string {
	return filepath.Join(c.Paths.OutputDir, fmt.Sprintf("matchups-adjusted-regressed-%d.csv", c.Season.Year))
}
