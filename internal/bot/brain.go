// internal/bot/brain.go
package bot

import (
	"fmt"
	"strings"

	"github.com/leighton-lakez/reverse/internal/models"
)

// Difficulty selects a bot strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown bot difficulty: %q", s)
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// ChooseCard picks one of legal, which must be non-empty. hand is the bot's whole hand.
	ChooseCard(legal, hand []models.Card, currentColor models.Color) models.Card
	// ChooseWildColor names the color to switch to after playing a wild.
	ChooseWildColor(hand []models.Card) models.Color
}
