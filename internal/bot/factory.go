// internal/bot/factory.go
package bot

import (
	"fmt"
	"math/rand"

	"github.com/leighton-lakez/reverse/internal/game"
)

// NewBrain creates a new bot brain for the given difficulty. A nil rng gets a time-seeded one.
func NewBrain(difficulty Difficulty, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = game.NewRand()
	}
	switch difficulty {
	case Easy:
		return &EasyBot{rng: rng}, nil
	case Medium:
		return &MediumBot{}, nil
	case Hard:
		return &HardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot difficulty: %q", difficulty)
	}
}
