// internal/handlers/hub.go
package handlers

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 32

// Subscriber is one WebSocket client's outbound queue. The write pump in
// game_ws.go drains Out; CloseSlow tears the queue down when the client
// cannot keep up.
type Subscriber struct {
	PlayerID uuid.UUID
	Out      chan []byte

	// lastSeq is the highest snapshot sequence queued so far, guarded by the
	// hub mutex. Anything at or below it is stale and never enqueued.
	lastSeq uint64

	closeOnce sync.Once
}

func newSubscriber(playerID uuid.UUID) *Subscriber {
	return &Subscriber{
		PlayerID: playerID,
		Out:      make(chan []byte, subscriberBuffer),
	}
}

// CloseSlow closes the outbound queue. Safe to call more than once.
func (s *Subscriber) CloseSlow() {
	s.closeOnce.Do(func() { close(s.Out) })
}

// Hub fans game snapshots out to the WebSocket clients subscribed to each
// session code. Publish is called from a game's single broadcast goroutine,
// so per-session delivery order matches commit order; a subscriber that
// cannot keep up is dropped rather than allowed to stall the others. The
// per-subscriber sequence guard keeps a connect-time catch-up snapshot from
// being followed by an older queued one.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*Subscriber]struct{}
	logger   *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*Subscriber]struct{}),
		logger:   logger,
	}
}

// Subscribe registers a new outbound queue for the given session code.
func (h *Hub) Subscribe(code string, playerID uuid.UUID) *Subscriber {
	sub := newSubscriber(playerID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[code] == nil {
		h.sessions[code] = make(map[*Subscriber]struct{})
	}
	h.sessions[code][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a queue and closes it.
func (h *Hub) Unsubscribe(code string, sub *Subscriber) {
	h.mu.Lock()
	if subs, ok := h.sessions[code]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.sessions, code)
		}
	}
	h.mu.Unlock()
	sub.CloseSlow()
}

// Publish marshals the message once and queues it to every subscriber of the
// session. The channel send never blocks: a full queue means a slow client,
// which is disconnected to preserve ordering for everyone else.
func (h *Hub) Publish(code string, seq uint64, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Errorf("failed to marshal broadcast for session %s: %v", code, err)
		return
	}

	h.mu.Lock()
	var slow []*Subscriber
	for sub := range h.sessions[code] {
		if !h.enqueueLocked(sub, seq, data) {
			slow = append(slow, sub)
		}
	}
	for _, sub := range slow {
		delete(h.sessions[code], sub)
	}
	h.mu.Unlock()

	for _, sub := range slow {
		h.logger.Warnf("dropping slow subscriber %s from session %s", sub.PlayerID, code)
		sub.CloseSlow()
	}
}

// Deliver queues a message to a single subscriber under the same sequence
// guard as Publish. Used for the connect-time catch-up snapshot, so the
// write pump stays the only writer of game state and a commit racing the
// connect can never be followed by the older catch-up.
func (h *Hub) Deliver(code string, sub *Subscriber, seq uint64, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Errorf("failed to marshal message for session %s: %v", code, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[code][sub]; !ok {
		return
	}
	h.enqueueLocked(sub, seq, data)
}

// enqueueLocked queues data unless the subscriber already holds a snapshot at
// or past seq (seq 0 carries no ordering and always goes through). Returns
// false when the subscriber's queue is full.
func (h *Hub) enqueueLocked(sub *Subscriber, seq uint64, data []byte) bool {
	if seq != 0 && seq <= sub.lastSeq {
		return true
	}
	select {
	case sub.Out <- data:
		if seq > sub.lastSeq {
			sub.lastSeq = seq
		}
		return true
	default:
		return false
	}
}

// SubscriberCount reports how many clients are subscribed to a session.
func (h *Hub) SubscriberCount(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[code])
}
