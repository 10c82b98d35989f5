package presence

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/channels"
)

type State int

const (
	StateConnected State = iota
	StateAuthenticated
	StateLocated
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StateLocated:
		return "located"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

type Position struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is one realtime connection. Only the Hub mutates it.
type Session struct {
	ID          uuid.UUID
	ConnectedAt time.Time

	send chan []byte
	done chan struct{}
	once sync.Once

	mu       sync.Mutex
	state    State
	userID   uuid.UUID
	position *Position

	// guarded by Hub.mu
	topics        channels.Set
	manual        channels.Set
	locationTopic channels.Topic
}

func newSession(buffer int, now time.Time) *Session {
	return &Session{
		ID:          uuid.New(),
		ConnectedAt: now,
		send:        make(chan []byte, buffer),
		done:        make(chan struct{}),
		state:       StateConnected,
		topics:      make(channels.Set),
		manual:      make(channels.Set),
	}
}

// Outbound is drained by the transport writer. It is never closed; watch Done instead.
func (s *Session) Outbound() <-chan []byte { return s.send }

func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) UserID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.state == StateAuthenticated || s.state == StateLocated
}

func (s *Session) Position() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == nil {
		return Position{}, false
	}
	return *s.position, true
}

func (s *Session) authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated || s.state == StateLocated
}

// enqueue never blocks. It reports false when the queue is full or the session is gone.
func (s *Session) enqueue(msg []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.state = StateDisconnected
		s.mu.Unlock()
		close(s.done)
	})
}
