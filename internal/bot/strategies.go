// internal/bot/strategies.go
package bot

import (
	"math/rand"

	"github.com/leighton-lakez/reverse/internal/models"
)

// EasyBot plays a uniformly random legal card and picks a random color.
type EasyBot struct {
	rng *rand.Rand
}

func (b *EasyBot) ChooseCard(legal, _ []models.Card, _ models.Color) models.Card {
	if len(legal) == 0 {
		return models.Card{}
	}
	return legal[b.rng.Intn(len(legal))]
}

func (b *EasyBot) ChooseWildColor(_ []models.Card) models.Color {
	return models.Colors[b.rng.Intn(len(models.Colors))]
}

// MediumBot plays an action card when it can, otherwise the first legal card.
type MediumBot struct{}

func (b *MediumBot) ChooseCard(legal, _ []models.Card, _ models.Color) models.Card {
	if len(legal) == 0 {
		return models.Card{}
	}
	for _, c := range legal {
		if c.IsAction() {
			return c
		}
	}
	return legal[0]
}

func (b *MediumBot) ChooseWildColor(hand []models.Card) models.Color {
	return dominantColor(hand)
}

// HardBot works down a fixed priority list:
//  1. wild4 while holding more than five cards
//  2. draw2
//  3. skip
//  4. the highest-ranked card of the current color (actions rank 0)
//  5. any other non-wild card
//  6. a wild
type HardBot struct{}

// hardWild4Threshold is the hand size above which a wild4 is played first.
const hardWild4Threshold = 5

func (b *HardBot) ChooseCard(legal, hand []models.Card, currentColor models.Color) models.Card {
	if len(legal) == 0 {
		return models.Card{}
	}
	if len(hand) > hardWild4Threshold {
		if c, ok := firstOfValue(legal, models.Wild4); ok {
			return c
		}
	}
	if c, ok := firstOfValue(legal, models.Draw2); ok {
		return c
	}
	if c, ok := firstOfValue(legal, models.Skip); ok {
		return c
	}

	best, found := models.Card{}, false
	for _, c := range legal {
		if c.Color != currentColor {
			continue
		}
		if !found || c.Rank() > best.Rank() {
			best, found = c, true
		}
	}
	if found {
		return best
	}

	for _, c := range legal {
		if !c.IsWild() {
			return c
		}
	}
	return legal[0]
}

func (b *HardBot) ChooseWildColor(hand []models.Card) models.Color {
	return dominantColor(hand)
}

func firstOfValue(cards []models.Card, v models.Value) (models.Card, bool) {
	for _, c := range cards {
		if c.Value == v {
			return c, true
		}
	}
	return models.Card{}, false
}

// dominantColor returns the most frequent concrete color in hand. Ties, and a hand with
// no colored cards, resolve in models.Colors order.
func dominantColor(hand []models.Card) models.Color {
	counts := make(map[models.Color]int, len(models.Colors))
	for _, c := range hand {
		if c.Color.IsConcrete() {
			counts[c.Color]++
		}
	}
	best := models.Colors[0]
	for _, color := range models.Colors[1:] {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}
