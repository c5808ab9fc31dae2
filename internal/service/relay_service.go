package service

import (
	"context"
	"encoding/json"

	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/domain"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/events"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/registry"
	pkglog "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/log"
	"github.com/viru0909-dev/nyay-setu-working-sub001/pkg/pubsub"
)

type relayService struct {
	registry *registry.Registry
	sender   Sender
	events   events.Publisher // nil when event publishing is disabled
}

// NewRelayService creates a RelayService. publisher may be nil.
func NewRelayService(reg *registry.Registry, sender Sender, publisher events.Publisher) RelayService {
	return &relayService{
		registry: reg,
		sender:   sender,
		events:   publisher,
	}
}

func (s *relayService) HandleJoinRoom(ctx context.Context, sess *domain.Session, roomID, userID, userName string) error {
	sess.SetIdentity(userID, userName)

	res := s.registry.Join(roomID, sess.ID)

	l := pkglog.Ctx(ctx)
	l.Info().
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldConnID, sess.ID).
		Str(pkglog.FieldUserID, userID).
		Int("peers", len(res.Peers)).
		Msg("participant joined room")

	// Peers learn of the new participant exactly once; a re-join of an
	// existing member only refreshes the participant list.
	if !res.AlreadyMember {
		notice := &domain.UserConnectedMessage{
			Type:     domain.MsgTypeUserConnected,
			RoomID:   roomID,
			UserID:   userID,
			UserName: userName,
		}
		for _, peer := range res.Peers {
			s.sender.SendToClient(peer, notice)
		}

		if s.events != nil {
			if res.Created {
				s.events.RoomOpened(ctx, roomID)
			}
			s.events.ParticipantJoined(ctx, roomID, sess.ID, userID, userName)
		}
	}

	participants := res.Peers
	if participants == nil {
		participants = []string{}
	}
	return s.sender.SendToClient(sess.ID, &domain.ExistingParticipantsMessage{
		Type:         domain.MsgTypeExistingParticipants,
		RoomID:       roomID,
		ConnectionID: sess.ID,
		Participants: participants,
	})
}

func (s *relayService) HandleSignal(ctx context.Context, sess *domain.Session, to string, signal json.RawMessage, userName string) error {
	// Pure point-to-point forwarding. The payload is never parsed, and the
	// target is deliberately not checked against the sender's rooms; an
	// unknown or disconnected target drops the message silently.
	return s.sender.SendToClient(to, &domain.SignalDeliveryMessage{
		Type:     domain.MsgTypeSignal,
		Signal:   signal,
		From:     sess.ID,
		UserName: userName,
	})
}

func (s *relayService) HandleLeaveRoom(ctx context.Context, sess *domain.Session, roomID string) error {
	left, empty := s.registry.Leave(roomID, sess.ID)
	if !left {
		return nil
	}
	s.announceDeparture(ctx, sess.ID, roomID, empty, pubsub.ReasonExplicit)
	return nil
}

func (s *relayService) HandleDisconnect(ctx context.Context, sess *domain.Session) error {
	for _, dep := range s.registry.Disconnect(sess.ID) {
		s.announceDeparture(ctx, sess.ID, dep.RoomID, dep.Empty, pubsub.ReasonDisconnect)
	}
	return nil
}

// announceDeparture notifies remaining members and the event bus after a
// connection has been removed from a room.
func (s *relayService) announceDeparture(ctx context.Context, connID, roomID string, empty bool, reason string) {
	l := pkglog.Ctx(ctx)
	l.Info().
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldConnID, connID).
		Str("reason", reason).
		Msg("participant left room")

	if !empty {
		notice := &domain.UserDisconnectedMessage{
			Type:         domain.MsgTypeUserDisconnected,
			RoomID:       roomID,
			ConnectionID: connID,
		}
		for _, peer := range s.registry.Members(roomID) {
			s.sender.SendToClient(peer, notice)
		}
	}

	if s.events != nil {
		s.events.ParticipantLeft(ctx, roomID, connID, reason)
		if empty {
			s.events.RoomClosed(ctx, roomID)
		}
	}
}

func (s *relayService) HandleToggleAudio(ctx context.Context, sess *domain.Session, roomID string, isAudioOn bool) error {
	s.relayToRoom(roomID, sess.ID, &domain.AudioToggledMessage{
		Type:         domain.MsgTypeToggleAudio,
		RoomID:       roomID,
		ConnectionID: sess.ID,
		IsAudioOn:    isAudioOn,
	})
	return nil
}

func (s *relayService) HandleToggleVideo(ctx context.Context, sess *domain.Session, roomID string, isVideoOn bool) error {
	s.relayToRoom(roomID, sess.ID, &domain.VideoToggledMessage{
		Type:         domain.MsgTypeToggleVideo,
		RoomID:       roomID,
		ConnectionID: sess.ID,
		IsVideoOn:    isVideoOn,
	})
	return nil
}

// relayToRoom fans a message out to every room member except the sender.
// No state is kept; an unknown room is a no-op.
func (s *relayService) relayToRoom(roomID, senderID string, message interface{}) {
	for _, peer := range s.registry.Peers(roomID, senderID) {
		s.sender.SendToClient(peer, message)
	}
}
