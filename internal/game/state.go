// internal/game/state.go
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/leighton-lakez/reverse/internal/models"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

var (
	ErrPlayerCount   = fmt.Errorf("player count must be between %d and %d", MinPlayers, MaxPlayers)
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrIllegalMove   = errors.New("card cannot be played on the current discard")
	ErrColorRequired = errors.New("a wild card needs a color choice")
)

// State is the authoritative game state: hands, piles, active color and the turn pointer.
// It is not safe for concurrent use; controllers guard it.
type State struct {
	Players      []string                 `json:"players"` // seat order
	Hands        map[string][]models.Card `json:"hands"`
	Deck         []models.Card            `json:"deck"`
	DiscardPile  []models.Card            `json:"discardPile"`
	CurrentColor models.Color             `json:"currentColor"`
	TurnIndex    int                      `json:"turnIndex"`
	Direction    Direction                `json:"direction"`
	Winner       string                   `json:"winner,omitempty"`
	Rules        Rules                    `json:"rules"`

	rng *rand.Rand
}

// NewState builds and shuffles a deck, deals every player a hand, and flips the first
// discard. Seat 0 moves first.
func NewState(players []string, rules Rules, rng *rand.Rand) (*State, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, ErrPlayerCount
	}
	if rng == nil {
		rng = NewRand()
	}
	if rules.HandSize <= 0 {
		rules.HandSize = DefaultRules().HandSize
	}
	if !rules.DefaultColor.IsConcrete() {
		rules.DefaultColor = DefaultRules().DefaultColor
	}
	s := &State{
		Players:   append([]string(nil), players...),
		Hands:     make(map[string][]models.Card, len(players)),
		Deck:      BuildDeck(rng),
		Direction: Forward,
		Rules:     rules,
		rng:       rng,
	}
	for round := 0; round < rules.HandSize; round++ {
		for _, p := range s.Players {
			s.Hands[p] = append(s.Hands[p], s.Deck[0])
			s.Deck = s.Deck[1:]
		}
	}
	s.flipFirstDiscard()
	return s, nil
}

// flipFirstDiscard seeds the discard pile from the deck. A wild takes the default color;
// no effect is applied for the first card.
func (s *State) flipFirstDiscard() {
	first := s.Deck[0]
	s.Deck = s.Deck[1:]
	s.DiscardPile = []models.Card{first}
	s.CurrentColor = first.Color
	if first.IsWild() {
		s.CurrentColor = s.Rules.DefaultColor
	}
}

// SetRand replaces the random source, e.g. after restoring a state from a record.
func (s *State) SetRand(rng *rand.Rand) { s.rng = rng }

func (s *State) random() *rand.Rand {
	if s.rng == nil {
		s.rng = NewRand()
	}
	return s.rng
}

func (s *State) PlayerCount() int { return len(s.Players) }

// Top returns the card on top of the discard pile.
func (s *State) Top() models.Card {
	if len(s.DiscardPile) == 0 {
		return models.Card{}
	}
	return s.DiscardPile[len(s.DiscardPile)-1]
}

// Seat returns the seat index of playerID, or -1.
func (s *State) Seat(playerID string) int {
	for i, p := range s.Players {
		if p == playerID {
			return i
		}
	}
	return -1
}

// Hand returns the hand of the player at seat.
func (s *State) Hand(seat int) []models.Card {
	if seat < 0 || seat >= len(s.Players) {
		return nil
	}
	return s.Hands[s.Players[seat]]
}

// CurrentPlayer returns the id of the player whose turn it is.
func (s *State) CurrentPlayer() string {
	return s.Players[s.TurnIndex]
}

func (s *State) Finished() bool { return s.Winner != "" }

// LegalCards returns the cards of seat's hand that may be played now, in hand order.
func (s *State) LegalCards(seat int) []models.Card {
	var legal []models.Card
	top := s.Top()
	for _, c := range s.Hand(seat) {
		if CanPlay(c, top, s.CurrentColor) {
			legal = append(legal, c)
		}
	}
	return legal
}

// Play plays the card cardID from seat's hand. chosen is the new color when the card is
// wild and is ignored otherwise. Nothing is mutated when an error is returned.
func (s *State) Play(seat int, cardID uuid.UUID, chosen models.Color) (Outcome, error) {
	if s.Finished() {
		return Outcome{}, ErrGameOver
	}
	if seat != s.TurnIndex {
		return Outcome{}, ErrNotYourTurn
	}
	player := s.Players[seat]
	hand := s.Hands[player]
	idx := -1
	for i, c := range hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{}, ErrCardNotInHand
	}
	card := hand[idx]
	if !CanPlay(card, s.Top(), s.CurrentColor) {
		return Outcome{}, ErrIllegalMove
	}
	if card.IsWild() && !chosen.IsConcrete() {
		return Outcome{}, ErrColorRequired
	}

	s.Hands[player] = append(hand[:idx:idx], hand[idx+1:]...)
	s.DiscardPile = append(s.DiscardPile, card)
	if card.IsWild() {
		s.CurrentColor = chosen
	} else {
		s.CurrentColor = card.Color
	}

	if len(s.Hands[player]) == 0 {
		s.Winner = player
		return Outcome{Seat: seat, Card: &card, Victim: -1, Next: s.TurnIndex, GameOver: true}, nil
	}
	return ResolveEffect(card, s), nil
}

// Draw makes seat draw one card and forfeit the play; the turn advances.
func (s *State) Draw(seat int) (Outcome, error) {
	if s.Finished() {
		return Outcome{}, ErrGameOver
	}
	if seat != s.TurnIndex {
		return Outcome{}, ErrNotYourTurn
	}
	drawn := s.drawInto(seat, 1)
	s.TurnIndex = NextTurnIndex(seat, s.Direction, s.PlayerCount())
	return Outcome{Seat: seat, Victim: -1, Drawn: len(drawn), Next: s.TurnIndex}, nil
}

// Pass advances the turn without a play or a draw.
func (s *State) Pass(seat int) Outcome {
	s.TurnIndex = NextTurnIndex(seat, s.Direction, s.PlayerCount())
	return Outcome{Seat: seat, Victim: -1, Next: s.TurnIndex}
}

// drawInto appends n cards to seat's hand and returns them.
func (s *State) drawInto(seat, n int) []models.Card {
	player := s.Players[seat]
	drawn := make([]models.Card, 0, n)
	for i := 0; i < n; i++ {
		drawn = append(drawn, s.drawOne())
	}
	s.Hands[player] = append(s.Hands[player], drawn...)
	return drawn
}

// drawOne takes the next card from the deck. When the deck is empty the discard pile,
// minus its top card, is shuffled back in. A fresh card is manufactured only when both
// are exhausted, or always under Rules.FreshDraws.
func (s *State) drawOne() models.Card {
	if s.Rules.FreshDraws {
		return RandomCard(s.random())
	}
	if len(s.Deck) == 0 && len(s.DiscardPile) > 1 {
		top := s.DiscardPile[len(s.DiscardPile)-1]
		s.Deck = append(s.Deck, s.DiscardPile[:len(s.DiscardPile)-1]...)
		s.DiscardPile = []models.Card{top}
		Shuffle(s.random(), s.Deck)
	}
	if len(s.Deck) == 0 {
		return RandomCard(s.random())
	}
	card := s.Deck[0]
	s.Deck = s.Deck[1:]
	return card
}

// CardCount is the number of cards across deck, hands and discard pile.
func (s *State) CardCount() int {
	total := len(s.Deck) + len(s.DiscardPile)
	for _, h := range s.Hands {
		total += len(h)
	}
	return total
}
