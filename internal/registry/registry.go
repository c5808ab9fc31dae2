// Package registry tracks which connections are in which hearing rooms.
//
// The registry is the relay's only shared mutable state. It is an
// explicitly owned, mutex-guarded object rather than a package global, so
// each server (and each test) gets its own instance. Rooms are created on
// first join and deleted on the transition back to empty; a room with zero
// participants never survives a call.
package registry

import "sync"

// Registry maps room IDs to participant sets, with a reverse index so a
// transport disconnect can clean up every room the connection joined.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{} // roomID -> connID set
	conns map[string]map[string]struct{} // connID -> roomID set
}

// JoinResult reports the outcome of a Join.
type JoinResult struct {
	// Peers are the other connection IDs present before this join.
	Peers []string
	// Created is true when this join created the room.
	Created bool
	// AlreadyMember is true when the connection was already in the room;
	// the join is then a no-op apart from returning Peers.
	AlreadyMember bool
}

// Departure describes one room a disconnecting connection was removed from.
type Departure struct {
	RoomID string
	// Empty is true when the removal emptied the room (which is then gone).
	Empty bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]map[string]struct{}),
	}
}

// Join adds connID to roomID, creating the room if absent.
func (r *Registry) Join(roomID, connID string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[roomID] = members
	}

	res := JoinResult{Created: !ok}

	if _, member := members[connID]; member {
		res.AlreadyMember = true
	} else {
		members[connID] = struct{}{}
		joined, ok := r.conns[connID]
		if !ok {
			joined = make(map[string]struct{})
			r.conns[connID] = joined
		}
		joined[roomID] = struct{}{}
	}

	for id := range members {
		if id != connID {
			res.Peers = append(res.Peers, id)
		}
	}
	return res
}

// Leave removes connID from roomID. It reports whether the connection was
// actually a member, and whether the removal emptied (and deleted) the room.
func (r *Registry) Leave(roomID, connID string) (left, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(roomID, connID)
}

func (r *Registry) leaveLocked(roomID, connID string) (left, empty bool) {
	members, ok := r.rooms[roomID]
	if !ok {
		return false, false
	}
	if _, member := members[connID]; !member {
		return false, false
	}

	delete(members, connID)
	if len(members) == 0 {
		delete(r.rooms, roomID)
		empty = true
	}

	if joined, ok := r.conns[connID]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(r.conns, connID)
		}
	}
	return true, empty
}

// Disconnect removes connID from every room it joined, returning one
// Departure per room so callers can fan out user-disconnected events.
func (r *Registry) Disconnect(connID string) []Departure {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.conns[connID]
	if !ok {
		return nil
	}

	departures := make([]Departure, 0, len(joined))
	for roomID := range joined {
		_, empty := r.leaveLocked(roomID, connID)
		departures = append(departures, Departure{RoomID: roomID, Empty: empty})
	}
	return departures
}

// Peers returns the members of roomID excluding excludeConnID. A nil slice
// means the room is unknown or has no other members.
func (r *Registry) Peers(roomID, excludeConnID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	peers := make([]string, 0, len(members))
	for id := range members {
		if id != excludeConnID {
			peers = append(peers, id)
		}
	}
	if len(peers) == 0 {
		return nil
	}
	return peers
}

// Members returns all connection IDs in roomID.
func (r *Registry) Members(roomID string) []string {
	return r.Peers(roomID, "")
}

// RoomCount returns the number of live rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
