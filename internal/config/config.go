// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ColorMatchConfig contains all configuration for the Color Match game.
type ColorMatchConfig struct {
	Levels []ColorMatchLevel `yaml:"levels"`
}

// ColorMatchLevel describes one difficulty of Color Match.
// The board has GridSize*GridSize tiles split evenly across Colors.
type ColorMatchLevel struct {
	Difficulty Difficulty `yaml:"difficulty"`
	GridSize   int        `yaml:"grid_size"`
	Colors     []string   `yaml:"colors"`
}

// TotalTiles returns the number of tiles on the board.
func (l ColorMatchLevel) TotalTiles() int {
	return l.GridSize * l.GridSize
}

// TilesPerColor returns how many tiles of each color the board holds.
func (l ColorMatchLevel) TilesPerColor() int {
	if len(l.Colors) == 0 {
		return 0
	}
	return l.TotalTiles() / len(l.Colors)
}

// Level returns the level for the given difficulty.
func (c ColorMatchConfig) Level(d Difficulty) (ColorMatchLevel, error) {
	for _, lvl := range c.Levels {
		if lvl.Difficulty == d {
			return lvl, nil
		}
	}
	return ColorMatchLevel{}, fmt.Errorf("config: no color match level %q", d)
}

// Validate checks that every level splits its board evenly across colors.
func (c ColorMatchConfig) Validate() error {
	if len(c.Levels) == 0 {
		return errors.New("config: color match needs at least one level")
	}
	for _, lvl := range c.Levels {
		if _, err := ParseDifficulty(string(lvl.Difficulty)); err != nil {
			return err
		}
		if lvl.GridSize <= 0 {
			return fmt.Errorf("config: level %s: grid_size must be positive", lvl.Difficulty)
		}
		if len(lvl.Colors) == 0 {
			return fmt.Errorf("config: level %s: no colors", lvl.Difficulty)
		}
		if lvl.TotalTiles()%len(lvl.Colors) != 0 {
			return fmt.Errorf("config: level %s: %d tiles do not split evenly into %d colors",
				lvl.Difficulty, lvl.TotalTiles(), len(lvl.Colors))
		}
	}
	return nil
}

// Match3Config contains all configuration for the Match-3 Rush game.
type Match3Config struct {
	Board   Match3Board   `yaml:"board"`
	Timer   Match3Timer   `yaml:"timer"`
	Cascade Match3Cascade `yaml:"cascade"`
	Scoring Match3Scoring `yaml:"scoring"`
}

// Match3Board defines the grid.
type Match3Board struct {
	Size       int      `yaml:"size"`
	Categories []string `yaml:"categories"`
}

// Match3Timer defines the countdown session.
type Match3Timer struct {
	LimitSeconds   float64   `yaml:"limit_seconds"`
	WarningSeconds []float64 `yaml:"warning_seconds"`
}

// Match3Cascade defines the pacing of delayed resolution steps.
type Match3Cascade struct {
	SwapDelayMs   int `yaml:"swap_delay_ms"`
	ClearDelayMs  int `yaml:"clear_delay_ms"`
	RefillDelayMs int `yaml:"refill_delay_ms"`
	MaxDepth      int `yaml:"max_depth"` // 0 means size*size
}

// Match3Scoring defines point awards.
type Match3Scoring struct {
	PointsPerRun int `yaml:"points_per_run"`
	ComboBonus   int `yaml:"combo_bonus"`
}

// Validate checks the Match-3 configuration for playable values.
func (c Match3Config) Validate() error {
	if c.Board.Size < 3 {
		return fmt.Errorf("config: match3 board size %d is smaller than a run", c.Board.Size)
	}
	if len(c.Board.Categories) < 2 {
		return errors.New("config: match3 needs at least two categories")
	}
	if c.Timer.LimitSeconds <= 0 {
		return errors.New("config: match3 time limit must be positive")
	}
	for _, w := range c.Timer.WarningSeconds {
		if w <= 0 || w >= c.Timer.LimitSeconds {
			return fmt.Errorf("config: match3 warning at %.0fs is outside the session", w)
		}
	}
	if c.Cascade.SwapDelayMs < 0 || c.Cascade.ClearDelayMs < 0 || c.Cascade.RefillDelayMs < 0 {
		return errors.New("config: match3 cascade delays must not be negative")
	}
	return nil
}
