package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2016, cfg.Season.Year)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.GameTimeout)
	assert.Equal(t, 388.0, cfg.Pipeline.MinutesThreshold)
	assert.Equal(t, 1.0, cfg.Ridge.Alpha)
	assert.Equal(t, "logistic", cfg.Training.Model)
	assert.Equal(t, 0.25, cfg.Training.Split)
	assert.False(t, cfg.Training.EvenClasses)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LINEUP_SEASON_YEAR", "2018")
	t.Setenv("LINEUP_PIPELINE_GAME_TIMEOUT", "10s")
	t.Setenv("LINEUP_TRAINING_MODEL", "ridge")
	t.Setenv("LINEUP_TRAINING_EVEN_CLASSES", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2018, cfg.Season.Year)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.GameTimeout)
	assert.Equal(t, "ridge", cfg.Training.Model)
	assert.True(t, cfg.Training.EvenClasses)
}

func TestLoadYAMLFile(t *testing.T) {
	content := `
season:
  year: 2014
pipeline:
  game_timeout: 45s
  minutes_threshold: 250
training:
  model: linear
  split: 0.4
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// File values win over struct-tag defaults.
	assert.Equal(t, 2014, cfg.Season.Year)
	assert.Equal(t, 45*time.Second, cfg.Pipeline.GameTimeout)
	assert.Equal(t, 250.0, cfg.Pipeline.MinutesThreshold)
	assert.Equal(t, "linear", cfg.Training.Model)
	assert.Equal(t, 0.4, cfg.Training.Split)

	// Fields the file omits keep their defaults.
	assert.Equal(t, 1.0, cfg.Ridge.Alpha)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoadEnvironmentBeatsFile(t *testing.T) {
	content := `
season:
  year: 2014
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("LINEUP_SEASON_YEAR", "2019")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2019, cfg.Season.Year)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown model", "LINEUP_TRAINING_MODEL", "random-forest"},
		{"split above one", "LINEUP_TRAINING_SPLIT", "1.5"},
		{"ancient season", "LINEUP_SEASON_YEAR", "1900"},
		{"bad log level", "LINEUP_LOGGING_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestValidateAfterMutation(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// Overrides applied after Load, such as command-line flags, must be
	// caught by a second validation pass.
	cfg.Season.Year = 1900
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{}
	cfg.Season.Year = 2016
	cfg.Paths.DataDir = "data"
	cfg.Paths.OutputDir = "out"

	assert.Equal(t, filepath.Join("data", "pbp-2016.csv"), cfg.PBPFile())
	assert.Equal(t, filepath.Join("data", "matchups-2016.csv"), cfg.MatchupsFile())
	assert.Equal(t, filepath.Join("data", "players-2016.csv"), cfg.PlayersFile())
	assert.Equal(t, filepath.Join("out", "matchups-adjusted-2016.csv"), cfg.AdjustedFile())
	assert.Equal(t, filepath.Join("out", "matchups-adjusted-regressed-2016.csv"), cfg.RegressedFile())
}
