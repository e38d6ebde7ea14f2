// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room handlers. These provide more
// specific reasons for closure than the standard codes.
const (
	BadSubprotocolError  = 3000 // Client connected with an unsupported subprotocol.
	InvalidRejoinToken   = 3001 // Presented rejoin token was invalid or expired.
	InvalidRoomCodeError = 3002 // Target room no longer exists.
)
