package room

// Broadcaster is the connection channel the manager talks through.
type Broadcaster interface {
	// Emit sends an event to one connection.
	Emit(connID string, event string, data interface{})
	// Broadcast sends an event to every connection associated with roomCode.
	Broadcast(roomCode string, event string, data interface{})
	// Join associates a connection with roomCode for Broadcast.
	Join(connID string, roomCode string)
	// Close drops every association with roomCode.
	Close(roomCode string)
}
