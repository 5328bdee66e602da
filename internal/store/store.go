// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/leighton-lakez/reverse/internal/models"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrExists          = errors.New("room already exists")
	ErrVersionConflict = errors.New("room was modified concurrently")
)

// ChangeFunc receives the full record after every accepted write. Calls for one
// subscription are sequential and in write order.
type ChangeFunc func(room *models.Room)

// Subscription is a live change feed; Close stops delivery.
type Subscription interface {
	Close() error
}

// Store is the shared room record store. Every Update is conditional on the version the
// caller last read.
type Store interface {
	// Create stores a new room at version 1 and sets room.Version accordingly.
	Create(ctx context.Context, room *models.Room) error
	Get(ctx context.Context, code string) (*models.Room, error)
	Update(ctx context.Context, code string, version int64, patch models.RoomPatch) (*models.Room, error)
	Subscribe(ctx context.Context, code string, fn ChangeFunc) (Subscription, error)
}
