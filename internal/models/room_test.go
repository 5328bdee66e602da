// internal/models/room_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	allowed := map[[2]RoomStatus]bool{
		{StatusWaiting, StatusReady}:    true,
		{StatusReady, StatusPlaying}:    true,
		{StatusPlaying, StatusFinished}: true,
	}
	all := []RoomStatus{StatusWaiting, StatusReady, StatusPlaying, StatusFinished}
	for _, from := range all {
		for _, to := range all {
			err := Transition(from, to)
			if allowed[[2]RoomStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestRoomApply(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &Room{RoomCode: "abc", HostID: "h", Status: StatusWaiting, Version: 1}

	guest := "g"
	ready := StatusReady
	require.NoError(t, r.Apply(RoomPatch{GuestID: &guest, Status: &ready}, now))
	assert.Equal(t, "g", r.GuestID)
	assert.Equal(t, StatusReady, r.Status)
	assert.Equal(t, int64(2), r.Version)
	assert.Equal(t, now, r.UpdatedAt)

	// re-sending the current status is not a transition
	err := r.Apply(RoomPatch{Status: &ready}, now)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, int64(2), r.Version)
	assert.Equal(t, "g", r.Opponent("h"))
	assert.Equal(t, "h", r.Opponent("g"))
}

func TestRoomMayJoin(t *testing.T) {
	open := &Room{HostID: "h", Status: StatusWaiting}
	assert.True(t, open.MayJoin("anyone"))
	assert.False(t, open.MayJoin("h"))

	invited := &Room{HostID: "h", InvitedID: "g", Status: StatusWaiting}
	assert.True(t, invited.MayJoin("g"))
	assert.False(t, invited.MayJoin("someone"))

	invited.Status = StatusReady
	assert.False(t, invited.MayJoin("g"))
}

func TestRoomCloneDoesNotAlias(t *testing.T) {
	w := "h"
	r := &Room{
		RoomCode: "abc",
		WinnerID: &w,
		GameState: &GameStateRecord{
			PlayerHands: map[string][]Card{"h": {NewCard(Red, "1")}},
			DiscardPile: []Card{NewCard(Blue, "2")},
		},
	}
	c := r.Clone()
	c.GameState.PlayerHands["h"][0] = NewCard(Green, "3")
	c.GameState.DiscardPile = append(c.GameState.DiscardPile, NewCard(Green, "4"))
	*c.WinnerID = "g"

	assert.Equal(t, Red, r.GameState.PlayerHands["h"][0].Color)
	assert.Len(t, r.GameState.DiscardPile, 1)
	assert.Equal(t, "h", *r.WinnerID)
}
