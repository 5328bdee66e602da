// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room feed.
// These provide more specific reasons for closure than standard codes.
const (
	BadSubprotocolError   = 3000 // Client connected with an unsupported subprotocol.
	InvalidAuthTokenError = 3001 // Provided auth token was invalid or expired.
	InvalidRoomCodeError  = 3003 // Room code in the WS URL does not resolve to a room.
	NotRoomMemberError    = 3004 // Authenticated user is neither host nor (prospective) guest.
)
