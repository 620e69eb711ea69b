package config

import "fmt"

// Difficulty selects the board size of Color Match.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // 3x3
	DifficultyMedium Difficulty = "medium" // 5x5
	DifficultyHard   Difficulty = "hard"   // 7x7
)

// Difficulties lists every difficulty in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a string to a Difficulty.
// An empty string selects easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "", DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Title returns the display name.
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}
