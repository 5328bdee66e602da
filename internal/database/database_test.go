// internal/database/database_test.go
package database

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidIDsNeverReachTheDatabase(t *testing.T) {
	_, err := UserDirectory{}.DisplayName(context.Background(), "not-a-uuid")
	assert.Error(t, err)

	err = Messenger{}.SendInvite(context.Background(), "nope", uuid.NewString(), "hi")
	assert.Error(t, err)
	err = Messenger{}.SendInvite(context.Background(), uuid.NewString(), "nope", "hi")
	assert.Error(t, err)
}

// TestUsersAndMessages needs a Postgres with schema.sql applied (DATABASE_URL).
func TestUsersAndMessages(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, ConnectDB(ctx, url, logrus.New()))
	t.Cleanup(DB.Close)

	host := models.User{Username: "Ada"}
	guest := models.User{Username: "Guest", IsEphemeral: true}
	require.NoError(t, CreateUser(ctx, &host))
	require.NoError(t, CreateUser(ctx, &guest))

	name, err := UserDirectory{}.DisplayName(ctx, host.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	_, err = GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, Messenger{}.SendInvite(ctx, host.ID.String(), guest.ID.String(), "Ada invited you to play UNO"))
}
