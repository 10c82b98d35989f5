// Package presence tracks realtime sessions, their topic subscriptions and
// fans alert events out to them.
//
// Lock order is Hub.mu then Session.mu. Delivery never blocks: every session
// has a bounded queue and an event that does not fit is dropped for that session.
package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/channels"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

var ErrSessionClosed = errors.New("session closed")

//go:generate mockgen -source=hub.go -destination=mocks/mock.go
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (uuid.UUID, error)
}

type Recorder interface {
	SetSessions(n int)
	SetTopics(n int)
	Delivered(event string)
	Dropped(event string)
}

type Options struct {
	SendBuffer     int
	NearbyRadiusKm float64
}

// Envelope is the frame every outbound message is wrapped in.
type Envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type Hub struct {
	logger *slog.Logger
	auth   Authenticator
	rec    Recorder
	opts   Options
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	topics   map[channels.Topic]map[*Session]struct{}
}

func NewHub(logger *slog.Logger, auth Authenticator, rec Recorder, opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	if opts.NearbyRadiusKm <= 0 {
		opts.NearbyRadiusKm = 5
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Hub{
		logger:   logger,
		auth:     auth,
		rec:      rec,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
		topics:   make(map[channels.Topic]map[*Session]struct{}),
	}
}

func (h *Hub) Encode(msgType string, data any) ([]byte, error) {
	return json.Marshal(Envelope{Type: msgType, Data: data, Timestamp: h.now().Unix()})
}

func (h *Hub) Connect() *Session {
	s := newSession(h.opts.SendBuffer, h.now().UTC())

	h.mu.Lock()
	h.sessions[s.ID] = s
	n := len(h.sessions)
	h.mu.Unlock()

	h.rec.SetSessions(n)
	h.logger.Debug("session connected", slog.String("session_id", s.ID.String()))
	return s
}

// Authenticate resolves the credential to a user. On failure the session stays Connected.
func (h *Hub) Authenticate(ctx context.Context, s *Session, credential string) (uuid.UUID, error) {
	const op = "presence.Hub.Authenticate"

	if credential == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}

	userID, err := h.auth.Authenticate(ctx, credential)
	if err != nil {
		h.logger.Info("session authentication rejected",
			slog.String("session_id", s.ID.String()),
			slog.Any("error", err),
		)
		if errors.Is(err, e.ErrUnauthenticated) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, err)
		}
		return uuid.Nil, fmt.Errorf("%s: %v: %w", op, err, e.ErrUnauthenticated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrSessionClosed)
	}
	s.userID = userID
	if s.state == StateConnected {
		s.state = StateAuthenticated
	}

	h.logger.Debug("session authenticated",
		slog.String("session_id", s.ID.String()),
		slog.String("user_id", userID.String()),
	)
	return userID, nil
}

// UpdateLocation stores the position and moves the session to the topics of
// its new grid cell. Global and manual subscriptions are kept.
func (h *Hub) UpdateLocation(s *Session, pos Position) ([]channels.Topic, error) {
	const op = "presence.Hub.UpdateLocation"

	if !s.authenticated() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}
	if pos.Lat < -90 || pos.Lat > 90 || pos.Lng < -180 || pos.Lng > 180 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if pos.UpdatedAt.IsZero() {
		pos.UpdatedAt = h.now().UTC()
	}

	next := channels.TopicsFor(pos.Lat, pos.Lng)
	nextLocation := next[1]

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionClosed)
	}

	if prev := s.locationTopic; prev != "" && prev != nextLocation && !s.manual.Has(prev) {
		h.leave(s, prev)
	}
	for _, t := range next {
		h.join(s, t)
	}
	s.locationTopic = nextLocation

	s.mu.Lock()
	p := pos
	s.position = &p
	s.state = StateLocated
	s.mu.Unlock()

	h.rec.SetTopics(len(h.topics))
	return next, nil
}

func (h *Hub) Subscribe(s *Session, name string) (channels.Topic, error) {
	const op = "presence.Hub.Subscribe"

	if !s.authenticated() {
		return "", fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}
	topic, err := channels.ParseTopic(name)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return "", fmt.Errorf("%s: %w", op, ErrSessionClosed)
	}
	s.manual.Add(topic)
	h.join(s, topic)

	h.rec.SetTopics(len(h.topics))
	return topic, nil
}

func (h *Hub) Unsubscribe(s *Session, name string) (channels.Topic, error) {
	const op = "presence.Hub.Unsubscribe"

	if !s.authenticated() {
		return "", fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}
	topic, err := channels.ParseTopic(name)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return "", fmt.Errorf("%s: %w", op, ErrSessionClosed)
	}
	delete(s.manual, topic)
	h.leave(s, topic)

	h.rec.SetTopics(len(h.topics))
	return topic, nil
}

// Disconnect removes the session from every topic. Safe to call more than once.
func (h *Hub) Disconnect(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.ID]; !ok {
		h.mu.Unlock()
		s.close()
		return
	}
	delete(h.sessions, s.ID)
	for t := range s.topics {
		h.leave(s, t)
	}
	s.manual = make(channels.Set)
	s.locationTopic = ""
	sessions, topics := len(h.sessions), len(h.topics)
	h.mu.Unlock()

	s.close()

	h.rec.SetSessions(sessions)
	h.rec.SetTopics(topics)
	h.logger.Debug("session disconnected", slog.String("session_id", s.ID.String()))
}

// Topics returns the current subscriptions of s.
func (h *Hub) Topics(s *Session) []channels.Topic {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]channels.Topic, 0, len(s.topics))
	for t := range s.topics {
		out = append(out, t)
	}
	return out
}

// Subscribers returns how many sessions listen on topic.
func (h *Hub) Subscribers(topic channels.Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Send queues a direct reply for one session.
func (h *Hub) Send(s *Session, msgType string, data any) bool {
	msg, err := h.Encode(msgType, data)
	if err != nil {
		h.logger.Error("encode reply failed", slog.String("type", msgType), slog.Any("error", err))
		return false
	}
	if !s.enqueue(msg) {
		h.rec.Dropped(msgType)
		h.logger.Warn("session queue full, reply dropped",
			slog.String("session_id", s.ID.String()),
			slog.String("type", msgType),
		)
		return false
	}
	return true
}

// PublishAlertCreated delivers evt to sessions in the alert's neighbourhood.
// Global listeners with a known position outside the neighbourhood are skipped.
// It returns the number of sessions the event was queued for.
func (h *Hub) PublishAlertCreated(evt domain.AlertCreatedEvent) int {
	hood := channels.NeighborhoodTopics(evt.Lat, evt.Lng, h.opts.NearbyRadiusKm)

	msg, err := h.Encode(domain.EventAlertCreated, evt)
	if err != nil {
		h.logger.Error("encode alert.created failed", slog.Any("error", err))
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	recipients := make(map[*Session]struct{})
	for t := range hood {
		if t == channels.Global {
			continue
		}
		for s := range h.topics[t] {
			recipients[s] = struct{}{}
		}
	}
	for s := range h.topics[channels.Global] {
		if s.locationTopic != "" && !hood.Has(s.locationTopic) {
			continue
		}
		recipients[s] = struct{}{}
	}

	return h.deliver(recipients, domain.EventAlertCreated, msg)
}

// PublishAlertConfirmed delivers evt to global subscribers only.
func (h *Hub) PublishAlertConfirmed(evt domain.AlertConfirmedEvent) int {
	msg, err := h.Encode(domain.EventAlertConfirmed, evt)
	if err != nil {
		h.logger.Error("encode alert.confirmed failed", slog.Any("error", err))
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.deliver(h.topics[channels.Global], domain.EventAlertConfirmed, msg)
}

func (h *Hub) Stats() domain.PresenceStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st := domain.PresenceStats{Sessions: len(h.sessions), Topics: len(h.topics)}
	for _, s := range h.sessions {
		switch s.State() {
		case StateAuthenticated:
			st.Authenticated++
		case StateLocated:
			st.Authenticated++
			st.Located++
		}
	}
	return st
}

// deliver must be called with h.mu held.
func (h *Hub) deliver(recipients map[*Session]struct{}, event string, msg []byte) int {
	sent := 0
	for s := range recipients {
		if s.enqueue(msg) {
			sent++
			h.rec.Delivered(event)
			continue
		}
		h.rec.Dropped(event)
		h.logger.Warn("session queue full, event dropped",
			slog.String("session_id", s.ID.String()),
			slog.String("event", event),
		)
	}
	return sent
}

// join and leave must be called with h.mu held for writing.
func (h *Hub) join(s *Session, t channels.Topic) {
	members, ok := h.topics[t]
	if !ok {
		members = make(map[*Session]struct{})
		h.topics[t] = members
	}
	members[s] = struct{}{}
	s.topics.Add(t)
}

func (h *Hub) leave(s *Session, t channels.Topic) {
	if members, ok := h.topics[t]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.topics, t)
		}
	}
	delete(s.topics, t)
}

type nopRecorder struct{}

func (nopRecorder) SetSessions(int)  {}
func (nopRecorder) SetTopics(int)    {}
func (nopRecorder) Delivered(string) {}
func (nopRecorder) Dropped(string)   {}
