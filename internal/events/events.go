// Package events publishes hearing-room lifecycle events for the case
// management backend (attendance/audit trail). Publishing is strictly
// fire-and-forget: a failed or disabled publisher never affects signaling.
package events

import (
	"context"

	pkglog "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/log"
	"github.com/viru0909-dev/nyay-setu-working-sub001/pkg/pubsub"
)

// Publisher emits room lifecycle events. Implementations must not block
// signaling; errors are reported, not propagated.
type Publisher interface {
	RoomOpened(ctx context.Context, roomID string)
	RoomClosed(ctx context.Context, roomID string)
	ParticipantJoined(ctx context.Context, roomID, connID, userID, userName string)
	ParticipantLeft(ctx context.Context, roomID, connID, reason string)
	Close() error
}

// pubsubPublisher publishes through the shared pub/sub layer (Redis or
// Kafka, per configuration).
type pubsubPublisher struct {
	ps pubsub.Publisher
}

// NewPublisher wraps a pubsub.Publisher as a room-event Publisher.
func NewPublisher(ps pubsub.Publisher) Publisher {
	return &pubsubPublisher{ps: ps}
}

func (p *pubsubPublisher) publish(ctx context.Context, eventType, roomID string, payload interface{}) {
	l := pkglog.L()
	event, err := pubsub.NewEvent(eventType, roomID, payload)
	if err != nil {
		l.Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to build room event")
		return
	}
	if err := p.ps.Publish(ctx, pubsub.RoomEventsChannel(roomID), event); err != nil {
		l.Warn().Err(err).
			Str(pkglog.FieldRoomID, roomID).
			Str("event_type", eventType).
			Msg("failed to publish room event")
	}
}

func (p *pubsubPublisher) RoomOpened(ctx context.Context, roomID string) {
	p.publish(ctx, pubsub.EventRoomOpened, roomID, &pubsub.RoomOpenedPayload{RoomID: roomID})
}

func (p *pubsubPublisher) RoomClosed(ctx context.Context, roomID string) {
	p.publish(ctx, pubsub.EventRoomClosed, roomID, &pubsub.RoomClosedPayload{RoomID: roomID})
}

func (p *pubsubPublisher) ParticipantJoined(ctx context.Context, roomID, connID, userID, userName string) {
	p.publish(ctx, pubsub.EventParticipantJoined, roomID, &pubsub.ParticipantJoinedPayload{
		RoomID:       roomID,
		ConnectionID: connID,
		UserID:       userID,
		UserName:     userName,
	})
}

func (p *pubsubPublisher) ParticipantLeft(ctx context.Context, roomID, connID, reason string) {
	p.publish(ctx, pubsub.EventParticipantLeft, roomID, &pubsub.ParticipantLeftPayload{
		RoomID:       roomID,
		ConnectionID: connID,
		Reason:       reason,
	})
}

func (p *pubsubPublisher) Close() error {
	return p.ps.Close()
}
