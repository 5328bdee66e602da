package models

// RoomAction is a message sent by a websocket client of the room feed.
type RoomAction struct {
	Type    string     `json:"type"`
	Version int64      `json:"version,omitempty"`
	Patch   *RoomPatch `json:"patch,omitempty"`
}
