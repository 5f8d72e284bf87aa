package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"realtime-srv/internal/model"
	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
)

type command func()

// Hub owns the registry. Every read and write of registry state happens in
// a command executed by Run, one at a time, in submission order.
type Hub struct {
	reg     *registry
	cmds    chan command
	l       log.Logger
	metrics *Metrics

	maxConnections int
	maxMessageLen  int
	now            func() time.Time
	newID          func() string

	// onMessage receives every finalized chat message. It runs off the loop.
	onMessage func(model.ChatMessage)

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type hubOptions struct {
	maxConnections int
	maxMessageLen  int
	queueSize      int
	now            func() time.Time
	newID          func() string
}

func newHub(l log.Logger, metrics *Metrics, opts hubOptions) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		reg:            newRegistry(),
		cmds:           make(chan command, opts.queueSize),
		l:              l,
		metrics:        metrics,
		maxConnections: opts.maxConnections,
		maxMessageLen:  opts.maxMessageLen,
		now:            opts.now,
		newID:          opts.newID,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.l.Info(context.Background(), "Hub shutting down...")
			h.closeAll()
			return

		case cmd := <-h.cmds:
			h.execute(cmd)
		}
	}
}

func (h *Hub) execute(cmd command) {
	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(context.Background(), "internal.realtime.usecase.hub.execute: panic: %v\n%s", r, debug.Stack())
		}
	}()
	cmd()
	h.metrics.observeRegistry(h.reg)
}

// enqueue submits cmd without waiting for it. It reports false once the hub has stopped.
func (h *Hub) enqueue(cmd command) bool {
	if h.ctx.Err() != nil {
		return false
	}
	select {
	case h.cmds <- cmd:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// call submits cmd and waits until it has run.
func (h *Hub) call(ctx context.Context, cmd command) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		cmd()
	}

	if h.ctx.Err() != nil {
		return realtime.ErrHubClosed
	}
	select {
	case h.cmds <- wrapped:
	case <-h.ctx.Done():
		return realtime.ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-h.done:
		return realtime.ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) closeAll() {
	for id, s := range h.reg.sessions {
		s.peer.Close()
		h.reg.remove(id)
	}
	h.metrics.observeRegistry(h.reg)
}

// --- registry operations, called on the loop only ---

func (h *Hub) register(peer Peer, token string) error {
	if h.maxConnections > 0 && h.reg.connectionCount() >= h.maxConnections {
		h.metrics.connectionsDenied.Inc()
		h.l.Warnf(context.Background(), "Max connections reached, rejecting connection: %s", peer.ID())
		return realtime.ErrMaxConnectionsReached
	}

	h.reg.add(peer, token, h.now())
	h.l.Debugf(context.Background(), "Connection registered: %s (total connections: %d)", peer.ID(), h.reg.connectionCount())
	return nil
}

// disconnect is idempotent. The offline status goes out at most once, only
// for identified connections, and only when the user has no other connection left.
func (h *Hub) disconnect(id string) {
	s, ok := h.reg.remove(id)
	if !ok {
		return
	}
	s.peer.Close()

	if s.binding == nil {
		h.l.Debugf(context.Background(), "Unidentified connection closed: %s", id)
		return
	}

	h.l.Infof(context.Background(), "User disconnected: %s (%s) - socket: %s",
		s.binding.identity.Username, s.binding.identity.UserID, id)
	if h.reg.online(s.binding.identity.UserID) {
		return
	}
	h.broadcastAll(realtime.EventUserStatusUpdate, realtime.UserStatus{
		UserID:    s.binding.identity.UserID,
		Status:    realtime.StatusOffline,
		Timestamp: h.now(),
	})
}

// --- delivery, called on the loop only ---

func encodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return json.Marshal(realtime.Envelope{Event: event, Data: data})
}

func (h *Hub) push(s *session, frame []byte) bool {
	if s.peer.Send(frame) {
		h.metrics.framesDelivered.Inc()
		return true
	}
	h.metrics.framesDropped.Inc()
	h.l.Warnf(context.Background(), "Failed to send frame to %s (buffer full)", s.peer.ID())
	return false
}

// emit sends one event to one session.
func (h *Hub) emit(s *session, event string, payload any) bool {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.l.Errorf(context.Background(), "internal.realtime.usecase.hub.emit: %v", err)
		return false
	}
	return h.push(s, frame)
}

// fanout encodes once and returns the number of sessions the frame was queued to.
func (h *Hub) fanout(sessions []*session, event string, payload any) int {
	if len(sessions) == 0 {
		return 0
	}
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.l.Errorf(context.Background(), "internal.realtime.usecase.hub.fanout: %v", err)
		return 0
	}

	sent := 0
	for _, s := range sessions {
		if h.push(s, frame) {
			sent++
		}
	}
	return sent
}

func (h *Hub) sendToRoom(room, event string, payload any) int {
	return h.fanout(h.reg.members(room, nil), event, payload)
}

func (h *Hub) sendToUser(userID, event string, payload any) int {
	return h.sendToRoom(realtime.PrivateRoom(userID), event, payload)
}

func (h *Hub) sendToToken(token, event string, payload any) int {
	s, ok := h.reg.byToken(token)
	if !ok {
		return 0
	}
	return h.fanout([]*session{s}, event, payload)
}

func (h *Hub) broadcastAll(event string, payload any) int {
	all := make([]*session, 0, len(h.reg.sessions))
	for _, s := range h.reg.sessions {
		all = append(all, s)
	}
	return h.fanout(all, event, payload)
}
