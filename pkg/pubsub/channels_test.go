package pubsub

import "testing"

func TestRoomEventsChannel(t *testing.T) {
	if got := RoomEventsChannel("hearing-42"); got != "signaling:room:hearing-42:events" {
		t.Errorf("RoomEventsChannel = %q", got)
	}
}

func TestChannelToTopicAndKey(t *testing.T) {
	tests := []struct {
		channel string
		topic   string
		key     string
		wantErr bool
	}{
		{"signaling:room:hearing-42:events", TopicRoomEvents, "hearing-42", false},
		{"signaling:room:X:events", TopicRoomEvents, "X", false},
		{"signaling:room:events", "", "", true},
		{"other:room:hearing-42:events", "", "", true},
		{"signaling:user:hearing-42:events", "", "", true},
		{"signaling:room:hearing-42:state", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		topic, key, err := channelToTopicAndKey(tt.channel)
		if (err != nil) != tt.wantErr {
			t.Errorf("channelToTopicAndKey(%q) error = %v, wantErr %v", tt.channel, err, tt.wantErr)
			continue
		}
		if topic != tt.topic || key != tt.key {
			t.Errorf("channelToTopicAndKey(%q) = (%q, %q), want (%q, %q)", tt.channel, topic, key, tt.topic, tt.key)
		}
	}
}

func TestEventPayloadRoundTrip(t *testing.T) {
	event, err := NewEvent(EventParticipantLeft, "hearing-42", &ParticipantLeftPayload{
		RoomID:       "hearing-42",
		ConnectionID: "abc",
		Reason:       ReasonDisconnect,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if event.Type != EventParticipantLeft || event.RoomID != "hearing-42" {
		t.Errorf("event = %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}

	var payload ParticipantLeftPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		t.Fatalf("UnmarshalPayload: %v", err)
	}
	if payload.ConnectionID != "abc" || payload.Reason != ReasonDisconnect {
		t.Errorf("payload = %+v", payload)
	}
}

func TestNewPublisherUnknownDriver(t *testing.T) {
	if _, err := NewPublisher(Config{Driver: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
