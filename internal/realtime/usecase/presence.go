package usecase

import (
	"sort"

	"realtime-srv/internal/realtime"
)

// presence builds a snapshot on the loop. Users lists identified connections,
// oldest identity first.
func (h *Hub) presence() realtime.Presence {
	users := make([]realtime.ConnectionInfo, 0, h.reg.identifiedCount())
	for id, s := range h.reg.sessions {
		if s.binding == nil {
			continue
		}
		users = append(users, realtime.ConnectionInfo{
			SocketID:  id,
			UserID:    s.binding.identity.UserID,
			Username:  s.binding.identity.Username,
			Role:      s.binding.identity.Role,
			JoinedAt:  s.binding.joinedAt,
			RoomCount: s.publicRoomCount(),
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].JoinedAt.Equal(users[j].JoinedAt) {
			return users[i].SocketID < users[j].SocketID
		}
		return users[i].JoinedAt.Before(users[j].JoinedAt)
	})

	return realtime.Presence{
		ConnectedCount:   h.reg.identifiedCount(),
		TotalConnections: h.reg.connectionCount(),
		RoomCount:        h.reg.roomCount(),
		Users:            users,
	}
}

func (h *Hub) identityOf(socketID string) (realtime.Identity, error) {
	s, ok := h.reg.get(socketID)
	if !ok {
		return realtime.Identity{}, realtime.ErrConnectionNotFound
	}
	if s.binding == nil {
		return realtime.Identity{}, realtime.ErrUserNotFound
	}
	return s.binding.identity, nil
}
