// internal/models/room.go
package models

import (
	"errors"
	"fmt"
	"time"
)

// RoomStatus is the lifecycle state of a two-player room.
type RoomStatus string

const (
	// StatusWaiting: the host created the room, no guest yet.
	StatusWaiting RoomStatus = "waiting"
	// StatusReady: the guest arrived and signalled it.
	StatusReady RoomStatus = "ready"
	// StatusPlaying: the host dealt and the game is running.
	StatusPlaying RoomStatus = "playing"
	// StatusFinished: a hand became empty; terminal.
	StatusFinished RoomStatus = "finished"
)

// ErrIllegalTransition is returned by Transition for any move outside the status table.
var ErrIllegalTransition = errors.New("illegal room status transition")

// transitions is the complete table of allowed status moves.
var transitions = map[RoomStatus]RoomStatus{
	StatusWaiting: StatusReady,
	StatusReady:   StatusPlaying,
	StatusPlaying: StatusFinished,
}

// Transition validates a status change. It is the only place the room state machine is defined.
func Transition(from, to RoomStatus) error {
	if next, ok := transitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// Valid reports whether s is one of the four room states.
func (s RoomStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusReady, StatusPlaying, StatusFinished:
		return true
	}
	return false
}

// GameStateRecord is the game state as persisted inside the shared room record.
type GameStateRecord struct {
	Deck         []Card            `json:"deck"`
	PlayerHands  map[string][]Card `json:"playerHands"`
	DiscardPile  []Card            `json:"discardPile"`
	CurrentColor Color             `json:"currentColor"`
	CurrentTurn  string            `json:"currentTurn"`
	IsReversed   bool              `json:"isReversed"`
}

// Clone deep-copies the record so mirrors never alias store memory.
func (g *GameStateRecord) Clone() *GameStateRecord {
	if g == nil {
		return nil
	}
	out := &GameStateRecord{
		Deck:         append([]Card(nil), g.Deck...),
		DiscardPile:  append([]Card(nil), g.DiscardPile...),
		CurrentColor: g.CurrentColor,
		CurrentTurn:  g.CurrentTurn,
		IsReversed:   g.IsReversed,
		PlayerHands:  make(map[string][]Card, len(g.PlayerHands)),
	}
	for id, hand := range g.PlayerHands {
		out.PlayerHands[id] = append([]Card(nil), hand...)
	}
	return out
}

// Room is the shared record coordinating two players.
// Version increases by one on every accepted write.
type Room struct {
	RoomCode  string           `json:"room_code"`
	HostID    string           `json:"host_id"`
	GuestID   string           `json:"guest_id"`
	InvitedID string           `json:"invited_id,omitempty"` // when set, the only id that may take the guest seat
	Status    RoomStatus       `json:"status"`
	GameState *GameStateRecord `json:"game_state"`
	WinnerID  *string          `json:"winner_id"`
	Version   int64            `json:"version"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Clone deep-copies the room.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	out.GameState = r.GameState.Clone()
	if r.WinnerID != nil {
		w := *r.WinnerID
		out.WinnerID = &w
	}
	return &out
}

// MayJoin reports whether playerID may take the guest seat of a waiting room.
func (r *Room) MayJoin(playerID string) bool {
	return r.Status == StatusWaiting && playerID != r.HostID &&
		(r.InvitedID == "" || r.InvitedID == playerID)
}

// Opponent returns the other player's id.
func (r *Room) Opponent(playerID string) string {
	if playerID == r.HostID {
		return r.GuestID
	}
	return r.HostID
}

// RoomPatch carries the fields of a partial update. Nil fields are left unchanged.
type RoomPatch struct {
	GuestID   *string          `json:"guest_id,omitempty"`
	Status    *RoomStatus      `json:"status,omitempty"`
	GameState *GameStateRecord `json:"game_state,omitempty"`
	WinnerID  *string          `json:"winner_id,omitempty"`
}

// Apply merges the patch into r, bumps the version and stamps the update time.
// A patch carrying a status must pass Transition, so re-sending the current status
// (for example dealing a second time) is rejected.
func (r *Room) Apply(p RoomPatch, now time.Time) error {
	if p.Status != nil {
		if err := Transition(r.Status, *p.Status); err != nil {
			return err
		}
		r.Status = *p.Status
	}
	if p.GuestID != nil {
		r.GuestID = *p.GuestID
	}
	if p.GameState != nil {
		r.GameState = p.GameState.Clone()
	}
	if p.WinnerID != nil {
		w := *p.WinnerID
		r.WinnerID = &w
	}
	r.Version++
	r.UpdatedAt = now
	return nil
}
