package config

import (
	_ "embed"
)

//go:embed defaults/colormatch.yaml
var defaultColorMatchYAML []byte

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultColorMatchConfig returns the default Color Match configuration.
func DefaultColorMatchConfig() ColorMatchConfig {
	return ColorMatchConfig{
		Levels: []ColorMatchLevel{
			{
				Difficulty: DifficultyEasy,
				GridSize:   3,
				Colors:     []string{"blue", "pink", "yellow"},
			},
			{
				Difficulty: DifficultyMedium,
				GridSize:   5,
				Colors:     []string{"blue", "pink", "yellow", "green", "orange"},
			},
			{
				Difficulty: DifficultyHard,
				GridSize:   7,
				Colors:     []string{"blue", "pink", "yellow", "green", "orange", "purple", "red"},
			},
		},
	}
}

// DefaultMatch3Config returns the default Match-3 Rush configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Size:       5,
			Categories: []string{"red_star", "blue_circle", "green_heart", "purple_square", "gold_crown"},
		},
		Timer: Match3Timer{
			LimitSeconds:   60,
			WarningSeconds: []float64{30, 10},
		},
		Cascade: Match3Cascade{
			SwapDelayMs:   300,
			ClearDelayMs:  600,
			RefillDelayMs: 400,
			MaxDepth:      0,
		},
		Scoring: Match3Scoring{
			PointsPerRun: 10,
			ComboBonus:   5,
		},
	}
}
