// internal/game/deck.go
package game

import (
	"math/rand"
	"time"

	"github.com/leighton-lakez/reverse/internal/models"
)

// DeckSize is the number of cards in a full UNO deck.
const DeckSize = 108

// deckTemplate is the fixed multiset of (color, value) pairs, without IDs.
var deckTemplate = buildTemplate()

func buildTemplate() []models.Card {
	tpl := make([]models.Card, 0, DeckSize)
	for _, color := range models.Colors {
		tpl = append(tpl, models.Card{Color: color, Value: models.NumberValue(0)})
		for i := 0; i < 2; i++ {
			for n := 1; n <= 9; n++ {
				tpl = append(tpl, models.Card{Color: color, Value: models.NumberValue(n)})
			}
			tpl = append(tpl,
				models.Card{Color: color, Value: models.Skip},
				models.Card{Color: color, Value: models.Reverse},
				models.Card{Color: color, Value: models.Draw2},
			)
		}
	}
	for i := 0; i < 4; i++ {
		tpl = append(tpl,
			models.Card{Color: models.Wild, Value: models.WildV},
			models.Card{Color: models.Wild, Value: models.Wild4},
		)
	}
	return tpl
}

// NewRand returns a time-seeded source, as used for every new game.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// BuildDeck returns the 108-card deck, every card with a fresh ID, shuffled.
func BuildDeck(rng *rand.Rand) []models.Card {
	deck := make([]models.Card, len(deckTemplate))
	for i, c := range deckTemplate {
		deck[i] = models.NewCard(c.Color, c.Value)
	}
	Shuffle(rng, deck)
	return deck
}

// Shuffle permutes cards in place (Fisher-Yates).
func Shuffle(rng *rand.Rand, cards []models.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// RandomCard manufactures a new card drawn uniformly from the deck template.
// It does not come out of any deck.
func RandomCard(rng *rand.Rand) models.Card {
	c := deckTemplate[rng.Intn(len(deckTemplate))]
	return models.NewCard(c.Color, c.Value)
}
