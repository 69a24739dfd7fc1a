package shared

import "flipboard/internal/game"

// Inbound events.
const (
	EventCreateRoom = "createRoom"
	EventJoinRoom   = "joinRoom"
	EventStartGame  = "startGame"
	EventFlipCell   = "flipCell"
	EventRematch    = "rematch"
)

// Outbound events.
const (
	EventRoomCreated       = "roomCreated"
	EventRoomJoined        = "roomJoined"
	EventPlayerCountUpdate = "playerCountUpdate"
	EventError             = "error"
	EventGameStarted       = "gameStarted"
	EventBoardUpdate       = "boardUpdate"
	EventGameOver          = "gameOver"
	EventRematchStarted    = "rematchStarted"
	EventOpponentLeft      = "opponentLeft"
	EventRoomExpired       = "roomExpired"
)

// Frame is the envelope for every message in both directions.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type RoomEntered struct {
	RoomCode     string     `json:"roomCode"`
	Board        game.Board `json:"board"`
	PlayerNumber int        `json:"playerNumber"`
	MaxPlayers   int        `json:"maxPlayers"`
}

type PlayerCount struct {
	CurrentPlayers int `json:"currentPlayers"`
	MaxPlayers     int `json:"maxPlayers"`
}

type GameStarted struct {
	RoundSeconds int        `json:"roundSeconds"`
	Board        game.Board `json:"board"`
}

type BoardUpdate struct {
	Board        game.Board `json:"board"`
	ClickedIndex int        `json:"clickedIndex"`
	Clicks       []int      `json:"clicks"`
}

type RematchStarted struct {
	Board game.Board `json:"board"`
}

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoundResult is the record published for every finished round.
type RoundResult struct {
	RoomCode string       `json:"roomCode"`
	Round    uint64       `json:"round"`
	EndedAt  int64        `json:"endedAt"`
	Outcome  game.Outcome `json:"outcome"`
}
