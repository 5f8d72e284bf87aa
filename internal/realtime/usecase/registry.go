package usecase

import (
	"time"

	"realtime-srv/internal/realtime"
)

// Peer is the outbound side of one transport connection.
type Peer interface {
	ID() string
	// Send queues a frame without blocking. It reports false when the frame was dropped.
	Send(data []byte) bool
	Close()
}

type binding struct {
	identity realtime.Identity
	joinedAt time.Time
}

type session struct {
	peer        Peer
	token       string
	connectedAt time.Time
	binding     *binding
	// rooms holds every membership, including the private user room.
	rooms map[string]struct{}
}

func (s *session) state() realtime.ConnState {
	if s.binding == nil {
		return realtime.StateHandshaken
	}
	return realtime.StateIdentified
}

// publicRoomCount excludes the private user room.
func (s *session) publicRoomCount() int {
	n := len(s.rooms)
	if s.binding != nil {
		if _, ok := s.rooms[realtime.PrivateRoom(s.binding.identity.UserID)]; ok {
			n--
		}
	}
	return n
}

// registry indexes sessions by connection id and by handshake token, and
// tracks room membership. A room exists only while it has members.
// It is not safe for concurrent use; the hub loop owns it.
type registry struct {
	sessions   map[string]*session
	tokens     map[string]string
	rooms      map[string]map[string]struct{}
	identified int

	// publicRooms counts rooms that are not private user rooms.
	publicRooms int
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[string]*session),
		tokens:   make(map[string]string),
		rooms:    make(map[string]map[string]struct{}),
	}
}

// add stores a new session. A reused token is remapped to the newest connection.
func (r *registry) add(peer Peer, token string, now time.Time) *session {
	s := &session{
		peer:        peer,
		token:       token,
		connectedAt: now,
		rooms:       make(map[string]struct{}),
	}
	r.sessions[peer.ID()] = s
	if token != "" {
		r.tokens[token] = peer.ID()
	}
	return s
}

func (r *registry) get(id string) (*session, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) byToken(token string) (*session, bool) {
	id, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	return r.get(id)
}

// bind sets or replaces the identity of s. When the user id changes the
// private room follows it. It returns the previous user id, empty on first bind.
func (r *registry) bind(s *session, id realtime.Identity, now time.Time) string {
	if s.binding == nil {
		s.binding = &binding{identity: id, joinedAt: now}
		r.identified++
		r.join(s, realtime.PrivateRoom(id.UserID))
		return ""
	}

	prev := s.binding.identity.UserID
	s.binding.identity = id
	if prev != id.UserID {
		r.leave(s, realtime.PrivateRoom(prev))
		r.join(s, realtime.PrivateRoom(id.UserID))
	}
	return prev
}

// join reports whether s was not already a member.
func (r *registry) join(s *session, room string) bool {
	if _, ok := s.rooms[room]; ok {
		return false
	}
	s.rooms[room] = struct{}{}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[room] = members
		if !realtime.IsPrivateRoom(room) {
			r.publicRooms++
		}
	}
	members[s.peer.ID()] = struct{}{}
	return true
}

// leave reports whether s was a member. Empty rooms are dropped.
func (r *registry) leave(s *session, room string) bool {
	if _, ok := s.rooms[room]; !ok {
		return false
	}
	delete(s.rooms, room)
	if members, ok := r.rooms[room]; ok {
		delete(members, s.peer.ID())
		if len(members) == 0 {
			delete(r.rooms, room)
			if !realtime.IsPrivateRoom(room) {
				r.publicRooms--
			}
		}
	}
	return true
}

// members returns the sessions in room other than except.
func (r *registry) members(room string, except *session) []*session {
	ids := r.rooms[room]
	out := make([]*session, 0, len(ids))
	for id := range ids {
		s, ok := r.sessions[id]
		if !ok || s == except {
			continue
		}
		out = append(out, s)
	}
	return out
}

// remove deletes every trace of the connection in one step: its rooms, its
// token mapping (only if the token still points here) and the session.
// The second result is false when the connection was already gone.
func (r *registry) remove(id string) (*session, bool) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	for room := range s.rooms {
		r.leave(s, room)
	}
	if s.token != "" && r.tokens[s.token] == id {
		delete(r.tokens, s.token)
	}
	if s.binding != nil {
		r.identified--
	}
	delete(r.sessions, id)
	return s, true
}

// online reports whether userID still has a live identified connection.
func (r *registry) online(userID string) bool {
	return len(r.rooms[realtime.PrivateRoom(userID)]) > 0
}

func (r *registry) connectionCount() int {
	return len(r.sessions)
}

func (r *registry) identifiedCount() int {
	return r.identified
}

// roomCount excludes private user rooms.
func (r *registry) roomCount() int {
	return r.publicRooms
}
