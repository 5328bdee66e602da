// internal/game/sync_state.go
package game

import (
	"fmt"

	"github.com/leighton-lakez/reverse/internal/models"
)

// PlayerView represents one player from the perspective of a requesting player.
type PlayerView struct {
	PlayerID      string        `json:"player_id"`
	HandSize      int           `json:"hand_size"`
	IsCurrentTurn bool          `json:"isCurrentTurn"`
	Hand          []models.Card `json:"hand,omitempty"` // only for the requesting player
}

// View is a snapshot of the game for one player; other players' hands are hidden.
type View struct {
	Players      []PlayerView `json:"players"`
	DiscardTop   models.Card  `json:"discardTop"`
	CurrentColor models.Color `json:"currentColor"`
	Direction    Direction    `json:"direction"`
	DeckSize     int          `json:"deckSize"`
	Winner       string       `json:"winner,omitempty"`
}

// ViewFor generates a snapshot of the game for forPlayer.
func (s *State) ViewFor(forPlayer string) View {
	v := View{
		DiscardTop:   s.Top(),
		CurrentColor: s.CurrentColor,
		Direction:    s.Direction,
		DeckSize:     len(s.Deck),
		Winner:       s.Winner,
	}
	for i, p := range s.Players {
		pv := PlayerView{
			PlayerID:      p,
			HandSize:      len(s.Hands[p]),
			IsCurrentTurn: i == s.TurnIndex && !s.Finished(),
		}
		if p == forPlayer {
			pv.Hand = append([]models.Card(nil), s.Hands[p]...)
		}
		v.Players = append(v.Players, pv)
	}
	return v
}

// ToRecord converts the state into the shape stored in a shared room record.
func (s *State) ToRecord() *models.GameStateRecord {
	rec := &models.GameStateRecord{
		Deck:         append([]models.Card(nil), s.Deck...),
		DiscardPile:  append([]models.Card(nil), s.DiscardPile...),
		CurrentColor: s.CurrentColor,
		CurrentTurn:  s.CurrentPlayer(),
		IsReversed:   s.Direction == Reversed,
		PlayerHands:  make(map[string][]models.Card, len(s.Players)),
	}
	for _, p := range s.Players {
		rec.PlayerHands[p] = append([]models.Card(nil), s.Hands[p]...)
	}
	return rec
}

// FromRecord rebuilds a State from a room record. players gives the seat order.
func FromRecord(rec *models.GameStateRecord, players []string, rules Rules) (*State, error) {
	if rec == nil {
		return nil, fmt.Errorf("room has no game state")
	}
	s := &State{
		Players:      append([]string(nil), players...),
		Hands:        make(map[string][]models.Card, len(players)),
		Deck:         append([]models.Card(nil), rec.Deck...),
		DiscardPile:  append([]models.Card(nil), rec.DiscardPile...),
		CurrentColor: rec.CurrentColor,
		Direction:    Forward,
		Rules:        rules,
	}
	if rec.IsReversed {
		s.Direction = Reversed
	}
	for _, p := range players {
		s.Hands[p] = append([]models.Card(nil), rec.PlayerHands[p]...)
	}
	s.TurnIndex = s.Seat(rec.CurrentTurn)
	if s.TurnIndex < 0 {
		return nil, fmt.Errorf("current turn %q is not a player in this game", rec.CurrentTurn)
	}
	return s, nil
}
