// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used within the game handlers. These provide
// more specific reasons for closure than standard codes. Authentication and
// session lookup fail before the upgrade and use plain HTTP statuses.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
)
