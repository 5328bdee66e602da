// internal/database/user.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leighton-lakez/reverse/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// CreateUser inserts a user, assigning an id if it has none.
func CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}
		user.ID = id
	}

	q := `INSERT INTO users (id, username, is_ephemeral) VALUES ($1, $2, $3)`

	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, user.ID, user.Username, user.IsEphemeral)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	q := `SELECT id, username, is_ephemeral FROM users WHERE id=$1`
	err := DB.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.IsEphemeral)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserDirectory resolves display names for room invitations.
type UserDirectory struct{}

// DisplayName returns the username of userID.
func (UserDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	u, err := GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}
