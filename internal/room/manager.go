package room

import (
	"context"
	"log"
	"time"

	"flipboard/internal/config"
	"flipboard/internal/game"
	"flipboard/internal/shared"

	"github.com/gin-gonic/gin"
)

const (
	defaultCapacity = 2
	maxCodeAttempts = 16
	publishTimeout  = 5 * time.Second
)

// ResultSink receives every finished round.
type ResultSink interface {
	Publish(ctx context.Context, res shared.RoundResult) error
}

type Option func(*Manager)

// WithAfterFunc replaces the timer used to expire rounds.
func WithAfterFunc(f AfterFunc) Option {
	return func(m *Manager) { m.after = f }
}

// WithSource replaces the randomness used for boards and room codes.
func WithSource(src game.Source) Option {
	return func(m *Manager) { m.src = src }
}

// WithResults publishes finished rounds to sink.
func WithResults(sink ResultSink) Option {
	return func(m *Manager) { m.results = sink }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager runs the room state machine. It holds no per-room state of its
// own: every operation looks the room up by code in the store.
type Manager struct {
	store Store
	out   Broadcaster

	roundDuration time.Duration
	codeLength    int
	idleTTL       time.Duration

	after   AfterFunc
	src     game.Source
	results ResultSink
	now     func() time.Time
}

func NewManager(s Store, cfg config.Config, out Broadcaster, opts ...Option) *Manager {
	m := &Manager{
		store:         s,
		out:           out,
		roundDuration: cfg.RoundDuration,
		codeLength:    cfg.RoomCodeLength,
		idleTTL:       cfg.IdleRoomTTL,
		after:         systemAfterFunc,
		src:           game.NewSource(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.codeLength <= 0 {
		m.codeLength = 6
	}
	return m
}

// SetBroadcaster wires the channel after construction, since the hub and the
// manager reference each other.
func (m *Manager) SetBroadcaster(out Broadcaster) {
	m.out = out
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

// Count reports the number of live rooms.
func (m *Manager) Count() int {
	return m.store.Len()
}

// locked returns the live room for code with its mutex held.
func (m *Manager) locked(code string) (*Room, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// CreateRoom allocates a room with connID as player 1. A capacity of 0 asks
// for the default of two players.
func (m *Manager) CreateRoom(connID string, capacity int) (*Room, error) {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if !game.ValidCapacity(capacity) {
		return nil, invalidCapacity(capacity)
	}
	board, err := game.NewBoard(capacity, m.src)
	if err != nil {
		return nil, invalidCapacity(capacity)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		r := newRoom(randCode(m.src, m.codeLength), capacity, board, connID, m.now())
		r.mu.Lock()
		if !m.store.Add(r) {
			r.mu.Unlock()
			log.Printf("room %s: code collision, retrying", r.Code)
			continue
		}

		m.out.Join(connID, r.Code)
		m.out.Emit(connID, shared.EventRoomCreated, shared.RoomEntered{
			RoomCode:     r.Code,
			Board:        r.board.Clone(),
			PlayerNumber: 1,
			MaxPlayers:   capacity,
		})
		r.mu.Unlock()

		log.Printf("room %s: created for %d players by %s", r.Code, capacity, connID)
		return r, nil
	}
	return nil, ErrRoomCodeExhausted
}

func (m *Manager) Join(code, connID string) error {
	r, err := m.locked(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if r.playerIndex(connID) >= 0 {
		return ErrAlreadyJoined
	}
	if r.full() {
		return ErrRoomFull
	}

	r.players = append(r.players, connID)
	r.clicks[connID] = 0
	r.updatedAt = m.now()
	if r.full() && r.phase == PhaseForming {
		r.phase = PhaseReady
	}

	m.out.Join(connID, code)
	m.out.Emit(connID, shared.EventRoomJoined, shared.RoomEntered{
		RoomCode:     code,
		Board:        r.board.Clone(),
		PlayerNumber: len(r.players),
		MaxPlayers:   r.Capacity,
	})
	m.out.Broadcast(code, shared.EventPlayerCountUpdate, shared.PlayerCount{
		CurrentPlayers: len(r.players),
		MaxPlayers:     r.Capacity,
	})

	log.Printf("room %s: %s joined (%d/%d)", code, connID, len(r.players), r.Capacity)
	return nil
}

// Start arms a new round on the current board.
func (m *Manager) Start(code, connID string) error {
	r, err := m.locked(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if !r.full() {
		return notEnoughPlayers(r.Capacity)
	}
	if r.phase == PhaseInProgress {
		return ErrAlreadyStarted
	}

	r.round++
	r.phase = PhaseInProgress
	r.updatedAt = m.now()
	m.armTimer(r)

	m.out.Broadcast(code, shared.EventGameStarted, shared.GameStarted{
		RoundSeconds: int(m.roundDuration / time.Second),
		Board:        r.board.Clone(),
	})

	log.Printf("room %s: round %d started by %s", code, r.round, connID)
	return nil
}

// Flip advances one cell for connID. Flips outside a running round, from
// non-players, or out of bounds are dropped; the return value reports
// whether the flip was applied.
func (m *Manager) Flip(code, connID string, idx int) bool {
	r, err := m.locked(code)
	if err != nil {
		return false
	}
	applied, res := m.flip(r, connID, idx)
	r.mu.Unlock()

	m.publish(res)
	return applied
}

// flip must be called with r.mu held.
func (m *Manager) flip(r *Room, connID string, idx int) (bool, *shared.RoundResult) {
	if r.phase != PhaseInProgress || r.playerIndex(connID) < 0 {
		return false, nil
	}
	if !game.Flip(r.board, idx, r.Capacity) {
		return false, nil
	}
	r.clicks[connID]++
	r.updatedAt = m.now()

	// Observers see the move even when it ends the round.
	m.out.Broadcast(r.Code, shared.EventBoardUpdate, shared.BoardUpdate{
		Board:        r.board.Clone(),
		ClickedIndex: idx,
		Clicks:       r.clickTally(),
	})

	if !game.IsAllKill(r.board, r.Capacity) {
		return true, nil
	}
	log.Printf("room %s: all-kill by %s", r.Code, connID)
	r.cancelTimer()
	return true, m.endRound(r, true)
}

// EndRound finishes the running round. It is a no-op when the room is gone
// or not in progress, so concurrent triggers emit a single result.
func (m *Manager) EndRound(code string, allKill bool) bool {
	r, err := m.locked(code)
	if err != nil {
		log.Printf("room %s: end round skipped, room not found", code)
		return false
	}
	res := m.endRound(r, allKill)
	r.mu.Unlock()

	m.publish(res)
	return res != nil
}

// endRound must be called with r.mu held. It returns the finished round, or
// nil when no round was running. The caller publishes it after unlocking.
func (m *Manager) endRound(r *Room, allKill bool) *shared.RoundResult {
	if r.phase != PhaseInProgress {
		return nil
	}
	r.phase = PhaseEnded
	r.cancelTimer()
	r.updatedAt = m.now()

	winType := game.WinNormal
	if allKill {
		winType = game.WinAllKill
	}
	outcome := game.Resolve(r.board, r.players, r.clicks, winType)

	for _, id := range r.players {
		m.out.Emit(id, shared.EventGameOver, outcome)
	}
	m.out.Broadcast(r.Code, shared.EventGameOver, outcome)

	log.Printf("room %s: round %d over, winner=%s type=%s", r.Code, r.round, outcome.Winner, winType)
	return &shared.RoundResult{
		RoomCode: r.Code,
		Round:    r.round,
		EndedAt:  r.updatedAt.Unix(),
		Outcome:  outcome,
	}
}

// publish hands a finished round to the result sink. It must not be called
// with a room lock held: a slow broker would stall that room.
func (m *Manager) publish(res *shared.RoundResult) {
	if res == nil || m.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := m.results.Publish(ctx, *res); err != nil {
		log.Printf("room %s: publish result: %v", res.RoomCode, err)
	}
}

// Rematch deals a fresh board and resets clicks. The room waits in Ready
// until a new Start, or stays Forming when asked before it filled.
func (m *Manager) Rematch(code string) error {
	r, err := m.locked(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	board, err := game.NewBoard(r.Capacity, m.src)
	if err != nil {
		return invalidCapacity(r.Capacity)
	}

	r.cancelTimer()
	// Invalidate any timer callback already in flight for the old round.
	r.round++
	r.board = board
	for _, id := range r.players {
		r.clicks[id] = 0
	}
	r.phase = PhaseForming
	if r.full() {
		r.phase = PhaseReady
	}
	r.updatedAt = m.now()

	m.out.Broadcast(code, shared.EventRematchStarted, shared.RematchStarted{Board: r.board.Clone()})

	log.Printf("room %s: rematch dealt", code)
	return nil
}

// Leave handles a departed connection. Any departure destroys the room.
func (m *Manager) Leave(code, connID string) {
	r, err := m.locked(code)
	if err != nil {
		return
	}
	defer r.mu.Unlock()

	if r.playerIndex(connID) < 0 {
		return
	}

	r.cancelTimer()
	if r.phase != PhaseEnded {
		for _, id := range r.players {
			if id != connID {
				m.out.Emit(id, shared.EventOpponentLeft, gin.H{"roomCode": code})
			}
		}
	}
	m.destroy(r)

	log.Printf("room %s: deleted after %s left", code, connID)
}

// ReapIdle removes rooms without a running round whose last activity is
// older than the idle TTL. It returns the number of rooms removed.
func (m *Manager) ReapIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}

	reaped := 0
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		if !r.closed && r.phase != PhaseInProgress && now.Sub(r.updatedAt) > m.idleTTL {
			for _, id := range r.players {
				m.out.Emit(id, shared.EventRoomExpired, gin.H{"roomCode": r.Code})
			}
			m.destroy(r)
			reaped++
			log.Printf("room %s: reaped after %s idle", r.Code, now.Sub(r.updatedAt).Round(time.Second))
		}
		r.mu.Unlock()
	}
	return reaped
}

// destroy must be called with r.mu held.
func (m *Manager) destroy(r *Room) {
	r.cancelTimer()
	r.closed = true
	m.store.DeleteRoom(r.Code)
	m.out.Close(r.Code)
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(src game.Source, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[src.Intn(len(letters))]
	}
	return string(b)
}
