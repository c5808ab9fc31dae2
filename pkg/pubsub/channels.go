package pubsub

import (
	"fmt"
	"strings"
)

// Channel naming for hearing-room lifecycle events.
const (
	// ChannelRoomEvents is the per-room channel the relay publishes to.
	ChannelRoomEvents = "signaling:room:%s:events"

	// TopicRoomEvents is the Kafka topic backing those channels.
	TopicRoomEvents = "hearing-room-events"
)

// Event types published by the signaling relay.
const (
	EventRoomOpened        = "room_opened"
	EventRoomClosed        = "room_closed"
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
)

// Departure reasons for participant_left events.
const (
	ReasonExplicit   = "explicit"
	ReasonDisconnect = "disconnect"
)

// RoomEventsChannel returns the channel name for a room's lifecycle events.
func RoomEventsChannel(roomID string) string {
	return fmt.Sprintf(ChannelRoomEvents, roomID)
}

// channelToTopicAndKey converts a channel name to a Kafka topic and message
// key, so Redis channels and Kafka topics stay interchangeable:
//
//	"signaling:room:HEARING42:events" → topic "hearing-room-events", key "HEARING42"
func channelToTopicAndKey(channel string) (topic, key string, err error) {
	parts := strings.Split(channel, ":")
	if len(parts) != 4 || parts[0] != "signaling" || parts[1] != "room" || parts[3] != "events" {
		return "", "", fmt.Errorf("invalid channel format: %s", channel)
	}
	return TopicRoomEvents, parts[2], nil
}

// RoomOpenedPayload is published when the first participant joins a room.
type RoomOpenedPayload struct {
	RoomID string `json:"room_id"`
}

// RoomClosedPayload is published when the last participant leaves.
type RoomClosedPayload struct {
	RoomID string `json:"room_id"`
}

// ParticipantJoinedPayload is published on every successful join.
type ParticipantJoinedPayload struct {
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	UserID       string `json:"user_id,omitempty"`
	UserName     string `json:"user_name,omitempty"`
}

// ParticipantLeftPayload is published on leave-room or disconnect.
type ParticipantLeftPayload struct {
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	Reason       string `json:"reason"` // "explicit", "disconnect"
}
