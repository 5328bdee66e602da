// internal/handlers/user.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/leighton-lakez/reverse/internal/auth"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/sirupsen/logrus"
)

type guestRequest struct {
	Username string `json:"username"`
}

// GuestHandler creates an ephemeral user and sets its session cookie. create persists
// the user (database.CreateUser in production).
func GuestHandler(logger *logrus.Logger, create func(ctx context.Context, u *models.User) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req guestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			http.Error(w, "bad guest request payload", http.StatusBadRequest)
			return
		}
		user := models.User{Username: req.Username, IsEphemeral: true}
		if user.Username == "" {
			user.Username = "Guest"
		}
		if err := create(r.Context(), &user); err != nil {
			logger.WithError(err).Error("failed to create ephemeral user")
			http.Error(w, "failed to create user", http.StatusInternalServerError)
			return
		}
		token, err := auth.CreateJWT(user.ID.String())
		if err != nil {
			logger.WithError(err).Error("failed to create ephemeral JWT")
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     authCookie,
			Value:    token,
			HttpOnly: true,
			Path:     "/",
		})
		writeJSON(w, http.StatusCreated, user)
	}
}
