package adjusted

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validWindow() LineupWindow {
	return LineupWindow{
		Game:        "G1",
		StartingMin: 5,
		EndMin:      10,
		HomeLineup:  []string{"A", "B", "C", "D", "E"},
		AwayLineup:  []string{"F", "G", "H", "I", "J"},
	}
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LineupWindow)
		wantErr bool
	}{
		{"valid window", func(w *LineupWindow) {}, false},
		{"zero-length window is valid", func(w *LineupWindow) { w.EndMin = w.StartingMin }, false},
		{"missing game id", func(w *LineupWindow) { w.Game = "" }, true},
		{"inverted time range", func(w *LineupWindow) { w.EndMin = 2 }, true},
		{"short home lineup", func(w *LineupWindow) { w.HomeLineup = w.HomeLineup[:4] }, true},
		{"duplicate within a side", func(w *LineupWindow) { w.AwayLineup[1] = "F" }, true},
		{"empty player id", func(w *LineupWindow) { w.HomeLineup[3] = "" }, true},
		{"player on both rosters", func(w *LineupWindow) { w.AwayLineup[0] = "C" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWindow()
			tt.mutate(&w)

			err := ValidateWindow(w)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   PlayByPlayEvent
		wantErr bool
	}{
		{"valid event", PlayByPlayEvent{Game: "G1", Minute: 3, Points: 2, FGA: 1, FGM: 1}, false},
		{"missing game", PlayByPlayEvent{Minute: 3}, true},
		{"negative minute", PlayByPlayEvent{Game: "G1", Minute: -1}, true},
		{"negative stat", PlayByPlayEvent{Game: "G1", Minute: 2, OREB: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvent(tt.event)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
