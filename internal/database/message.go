// internal/database/message.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertMessage stores a direct text message from one user to another.
func InsertMessage(ctx context.Context, senderID, recipientID uuid.UUID, body string) error {
	q := `INSERT INTO messages (id, sender_id, recipient_id, body, created_at)
	      VALUES ($1, $2, $3, $4, NOW())`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, uuid.New(), senderID, recipientID, body)
		return err
	})
}

// Messenger delivers room invitations as direct messages.
type Messenger struct{}

// SendInvite writes text into the recipient's inbox.
func (Messenger) SendInvite(ctx context.Context, fromID, toID, text string) error {
	from, err := uuid.Parse(fromID)
	if err != nil {
		return fmt.Errorf("invalid sender id %q: %w", fromID, err)
	}
	to, err := uuid.Parse(toID)
	if err != nil {
		return fmt.Errorf("invalid recipient id %q: %w", toID, err)
	}
	if err := InsertMessage(ctx, from, to, text); err != nil {
		return fmt.Errorf("failed to send invitation: %w", err)
	}
	return nil
}
