package models

import "github.com/google/uuid"

// User is the identity record owned by the surrounding application.
// Only the fields the game needs are read.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	IsEphemeral bool      `json:"is_ephemeral"`
}
