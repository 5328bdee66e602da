// internal/bot/api.go
package bot

import (
	"math/rand"

	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/models"
)

// ChooseCard picks a card from legal for the given difficulty.
func ChooseCard(legal, hand []models.Card, currentColor models.Color, difficulty Difficulty, rng *rand.Rand) (models.Card, error) {
	brain, err := NewBrain(difficulty, rng)
	if err != nil {
		return models.Card{}, err
	}
	return brain.ChooseCard(legal, hand, currentColor), nil
}

// ChooseWildColor picks the color a bot of the given difficulty names after a wild.
func ChooseWildColor(hand []models.Card, difficulty Difficulty, rng *rand.Rand) (models.Color, error) {
	brain, err := NewBrain(difficulty, rng)
	if err != nil {
		return "", err
	}
	return brain.ChooseWildColor(hand), nil
}

// LegalCards filters hand down to the cards playable on top while currentColor is active.
func LegalCards(hand []models.Card, top models.Card, currentColor models.Color) []models.Card {
	var legal []models.Card
	for _, c := range hand {
		if game.CanPlay(c, top, currentColor) {
			legal = append(legal, c)
		}
	}
	return legal
}

// TakeTurn plays one full turn for seat. With no legal card the bot draws exactly one card
// and the turn passes; an empty hand just passes.
func TakeTurn(s *game.State, seat int, brain Brain) (game.Outcome, error) {
	hand := s.Hand(seat)
	if len(hand) == 0 {
		return s.Pass(seat), nil
	}
	legal := LegalCards(hand, s.Top(), s.CurrentColor)
	if len(legal) == 0 {
		return s.Draw(seat)
	}
	card := brain.ChooseCard(legal, hand, s.CurrentColor)
	var color models.Color
	if card.IsWild() {
		color = brain.ChooseWildColor(hand)
	}
	return s.Play(seat, card.ID, color)
}

// LocalTurn adapts brain into the bot hook of a local game.
func LocalTurn(brain Brain) game.BotTurnFunc {
	return func(s *game.State, seat int) (game.Outcome, error) {
		return TakeTurn(s, seat, brain)
	}
}
