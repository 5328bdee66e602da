// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/leighton-lakez/reverse/internal/middleware"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

// roomSubprotocol is the websocket subprotocol clients of the room feed must request.
const roomSubprotocol = "room"

// roomMessage is what the server sends on the room feed.
type roomMessage struct {
	Type  string       `json:"type"` // "room", "pong" or "error"
	Room  *models.Room `json:"room,omitempty"`
	Error string       `json:"error,omitempty"`
	Code  string       `json:"code,omitempty"`
}

// RoomWSHandler serves /room/ws/{code}: it sends the current record, relays every change
// of the room and accepts versioned updates from the connected player.
func RoomWSHandler(logger *logrus.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := pathParam(r, "/room/ws/")
		if code == "" {
			http.Error(w, "missing room code in path (/room/ws/{code})", http.StatusBadRequest)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{roomSubprotocol},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.WithError(err).WithField("room", code).Warn("websocket accept error")
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal server error during handler exit")

		if c.Subprotocol() != roomSubprotocol {
			c.Close(BadSubprotocolError, "client must use the 'room' subprotocol")
			return
		}

		userID, err := authenticate(r)
		if err != nil {
			c.Close(InvalidAuthTokenError, "invalid auth token")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		current, err := st.Get(ctx, code)
		if err != nil {
			c.Close(InvalidRoomCodeError, "room not found")
			return
		}
		if !mayAccess(current, userID) {
			c.Close(NotRoomMemberError, "you are not a player in this room")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, code, userID)

		sub, err := st.Subscribe(ctx, code, func(rm *models.Room) {
			writeRoomMessage(ctx, c, logger, roomMessage{Type: "room", Room: rm})
		})
		if err != nil {
			c.Close(websocket.StatusInternalError, "failed to subscribe")
			return
		}
		defer sub.Close()

		writeRoomMessage(ctx, c, logger, roomMessage{Type: "room", Room: current})

		err = readRoomMessages(ctx, c, st, code, userID, logger)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, code, err)
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			c.Close(websocket.StatusNormalClosure, "")
		}
	}
}

// mayAccess admits the host, the guest, and whoever may still take the guest seat.
func mayAccess(rm *models.Room, userID string) bool {
	return rm.HostID == userID || rm.GuestID == userID || rm.MayJoin(userID)
}

// readRoomMessages runs until the client goes away.
func readRoomMessages(ctx context.Context, c *websocket.Conn, st store.Store, code, userID string, logger *logrus.Logger) error {
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		var action models.RoomAction
		if err := json.Unmarshal(data, &action); err != nil {
			writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: "invalid message"})
			continue
		}

		switch action.Type {
		case "ping":
			writeRoomMessage(ctx, c, logger, roomMessage{Type: "pong"})
		case "update":
			if action.Patch == nil {
				writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: "update without patch"})
				continue
			}
			if action.Patch.GuestID != nil && *action.Patch.GuestID != userID {
				writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: "guest_id must be your own id"})
				continue
			}
			if action.Patch.Status != nil && !action.Patch.Status.Valid() {
				writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: "unknown room status", Code: "invalid_status"})
				continue
			}
			if _, err := st.Update(ctx, code, action.Version, *action.Patch); err != nil {
				writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: err.Error(), Code: errorCode(err)})
			}
		default:
			writeRoomMessage(ctx, c, logger, roomMessage{Type: "error", Error: "unknown message type: " + action.Type})
		}
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrIllegalTransition):
		return "illegal_transition"
	}
	return "internal"
}

func writeRoomMessage(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, msg roomMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.WithError(err).Error("failed to marshal room message")
		return
	}
	wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Write(wctx, websocket.MessageText, data); err != nil {
		logger.WithError(err).Debug("failed to write room message")
	}
}
