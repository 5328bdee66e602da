// internal/game/events.go
package game

import "github.com/leighton-lakez/reverse/internal/models"

// GameEventType is an enum-like type for notifications emitted to the presentation layer.
type GameEventType string

const (
	EventCardPlayed   GameEventType = "card_played"
	EventCardDrawn    GameEventType = "card_drawn"
	EventSkip         GameEventType = "skip"
	EventReverse      GameEventType = "reverse"
	EventDrawTwo      GameEventType = "draw2"
	EventWildDrawFour GameEventType = "wild4"
	EventPlayerTurn   GameEventType = "player_turn"
	EventGameOver     GameEventType = "game_over"
	EventMoveRejected GameEventType = "move_rejected"
	EventRoomFallback GameEventType = "room_fallback"
	EventSyncFailed   GameEventType = "sync_failed"
)

// GameEvent is a discrete, toast-style notification. The engine does not depend on them.
type GameEvent struct {
	Type    GameEventType `json:"type"`
	Player  string        `json:"player,omitempty"`
	Target  string        `json:"target,omitempty"`
	Card    *models.Card  `json:"card,omitempty"`
	Color   models.Color  `json:"color,omitempty"`
	Count   int           `json:"count,omitempty"`
	Message string        `json:"message,omitempty"`
}

// EventsFor translates an outcome into the notifications describing it.
func EventsFor(s *State, out Outcome) []GameEvent {
	actor := s.Players[out.Seat]
	var evs []GameEvent

	if out.Card == nil {
		evs = append(evs, GameEvent{Type: EventCardDrawn, Player: actor, Count: out.Drawn})
	} else {
		evs = append(evs, GameEvent{Type: EventCardPlayed, Player: actor, Card: out.Card, Color: s.CurrentColor})
	}

	target := ""
	if out.Victim >= 0 {
		target = s.Players[out.Victim]
	}
	switch out.Effect {
	case EffectSkip:
		evs = append(evs, GameEvent{Type: EventSkip, Player: actor, Target: target})
	case EffectReverse:
		evs = append(evs, GameEvent{Type: EventReverse, Player: actor, Target: target})
	case EffectDraw2:
		evs = append(evs, GameEvent{Type: EventDrawTwo, Player: actor, Target: target, Count: out.Drawn})
	case EffectWild4:
		evs = append(evs, GameEvent{Type: EventWildDrawFour, Player: actor, Target: target, Count: out.Drawn, Color: s.CurrentColor})
	}

	if out.GameOver {
		evs = append(evs, GameEvent{Type: EventGameOver, Player: s.Winner})
	} else {
		evs = append(evs, GameEvent{Type: EventPlayerTurn, Player: s.Players[out.Next]})
	}
	return evs
}
