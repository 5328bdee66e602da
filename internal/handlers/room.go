// internal/handlers/room.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/leighton-lakez/reverse/internal/room"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

type createRoomRequest struct {
	GuestID string `json:"guest_id"`
}

type createRoomResponse struct {
	RoomCode string `json:"room_code"`
	JoinURL  string `json:"join_url"`
}

// CreateRoomHandler creates a waiting room hosted by the caller and invites guest_id.
func CreateRoomHandler(logger *logrus.Logger, svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		hostID, err := authenticate(r)
		if errors.Is(err, errMissingToken) {
			http.Error(w, "missing auth_token", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}

		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad room request payload", http.StatusBadRequest)
			return
		}
		if req.GuestID == hostID {
			http.Error(w, "cannot invite yourself", http.StatusBadRequest)
			return
		}

		code, err := svc.CreateRoom(r.Context(), hostID, req.GuestID)
		if err != nil {
			logger.WithError(err).WithField("host", hostID).Error("failed to create room")
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, createRoomResponse{RoomCode: code, JoinURL: svc.JoinLink(code)})
	}
}

// GetRoomHandler returns the current room record: GET /room/{code}.
func GetRoomHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		code := pathParam(r, "/room/")
		if code == "" {
			http.Error(w, "missing room code in path (/room/{code})", http.StatusBadRequest)
			return
		}
		rm, err := st.Get(r.Context(), code)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "failed to read room", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rm)
	}
}
