package room

import (
	"log"
	"time"
)

// Timer is a pending delayed action. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// roundTimer is bound to the round generation it was armed for. A callback
// that fires after the room moved to a later round is discarded.
type roundTimer struct {
	round uint64
	t     Timer
}

func (m *Manager) armTimer(r *Room) {
	code, round := r.Code, r.round
	r.timer = &roundTimer{
		round: round,
		t: m.after(m.roundDuration, func() {
			m.expire(code, round)
		}),
	}
}

func (r *Room) cancelTimer() {
	if r.timer == nil {
		return
	}
	r.timer.t.Stop()
	r.timer = nil
}

func (m *Manager) expire(code string, round uint64) {
	r, err := m.locked(code)
	if err != nil {
		return
	}
	if r.round != round {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	res := m.endRound(r, false)
	r.mu.Unlock()

	if res != nil {
		log.Printf("room %s: round %d timed out", code, round)
		m.publish(res)
	}
}
