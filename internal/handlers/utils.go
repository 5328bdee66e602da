// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/leighton-lakez/reverse/internal/auth"
)

// authCookie is the cookie carrying the session JWT.
const authCookie = "auth_token"

var errMissingToken = errors.New("missing auth_token")

// extractCookieToken extracts a named cookie value from "Cookie" header, or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}

// authenticate returns the user id of the request's session cookie.
func authenticate(r *http.Request) (string, error) {
	token := extractCookieToken(r.Header.Get("Cookie"), authCookie)
	if token == "" {
		return "", errMissingToken
	}
	return auth.AuthenticateJWT(token)
}

// pathParam returns the first path segment after prefix.
func pathParam(r *http.Request, prefix string) string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	return strings.Split(rest, "/")[0]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
