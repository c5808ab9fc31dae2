package service

import (
	"context"
	"encoding/json"

	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/domain"
)

// Sender delivers a message to one connection. The hub implements it; tests
// substitute a recording fake. Sending to an unknown connection ID is a
// silent no-op.
type Sender interface {
	SendToClient(connID string, message interface{}) error
}

// RelayService brokers signaling and presence events between hearing-room
// participants. All methods are best-effort: they mutate in-memory state
// and emit messages, with no acknowledgment or retry.
type RelayService interface {
	// HandleJoinRoom adds the caller to a room, tells existing members a
	// user connected, and replies with the peers present at join time.
	HandleJoinRoom(ctx context.Context, sess *domain.Session, roomID, userID, userName string) error

	// HandleSignal forwards an opaque WebRTC payload to one connection.
	HandleSignal(ctx context.Context, sess *domain.Session, to string, signal json.RawMessage, userName string) error

	// HandleLeaveRoom removes the caller from a room and notifies the rest.
	HandleLeaveRoom(ctx context.Context, sess *domain.Session, roomID string) error

	// HandleToggleAudio relays the caller's mute state to the other members.
	HandleToggleAudio(ctx context.Context, sess *domain.Session, roomID string, isAudioOn bool) error

	// HandleToggleVideo relays the caller's camera state to the other members.
	HandleToggleVideo(ctx context.Context, sess *domain.Session, roomID string, isVideoOn bool) error

	// HandleDisconnect performs leave-room cleanup for every room the
	// connection belonged to.
	HandleDisconnect(ctx context.Context, sess *domain.Session) error
}
