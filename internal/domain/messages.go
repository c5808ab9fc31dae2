package domain

import "encoding/json"

// WebSocket message types from client.
const (
	MsgTypeJoinRoom    = "join-room"
	MsgTypeSignal      = "signal"
	MsgTypeLeaveRoom   = "leave-room"
	MsgTypeToggleAudio = "toggle-audio"
	MsgTypeToggleVideo = "toggle-video"
	MsgTypePing        = "ping"
)

// WebSocket message types to client. Signal and the toggles keep the same
// type in both directions; the payload shape tells them apart.
const (
	MsgTypeExistingParticipants = "existing-participants"
	MsgTypeUserConnected        = "user-connected"
	MsgTypeUserDisconnected     = "user-disconnected"
	MsgTypeError                = "error"
	MsgTypePong                 = "pong"
)

// BaseMessage is the envelope shared by all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

// JoinRoomMessage adds the caller to a hearing room. UserID and UserName
// are opaque application-level identity, passed through unvalidated.
type JoinRoomMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// SignalMessage carries an opaque WebRTC handshake payload (SDP offer,
// answer, or ICE candidate) addressed to one connection ID. The relay
// never inspects Signal.
type SignalMessage struct {
	Type     string          `json:"type"`
	To       string          `json:"to"`
	Signal   json.RawMessage `json:"signal"`
	UserName string          `json:"user_name,omitempty"`
}

// LeaveRoomMessage removes the caller from a hearing room.
type LeaveRoomMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

// ToggleAudioMessage announces the caller's mute state to the room.
type ToggleAudioMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"room_id"`
	IsAudioOn bool   `json:"is_audio_on"`
}

// ToggleVideoMessage announces the caller's camera state to the room.
type ToggleVideoMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"room_id"`
	IsVideoOn bool   `json:"is_video_on"`
}

// Server -> Client messages

// ExistingParticipantsMessage is sent to the joiner alone. ConnectionID is
// the joiner's own server-assigned ID; Participants are the connection IDs
// of the peers already in the room.
type ExistingParticipantsMessage struct {
	Type         string   `json:"type"`
	RoomID       string   `json:"room_id"`
	ConnectionID string   `json:"connection_id"`
	Participants []string `json:"participants"`
}

// UserConnectedMessage notifies existing members of a new participant.
type UserConnectedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// UserDisconnectedMessage notifies remaining members that a participant
// left, by explicit leave-room or transport disconnect.
type UserDisconnectedMessage struct {
	Type         string `json:"type"`
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
}

// SignalDeliveryMessage is the relayed form of SignalMessage, delivered to
// the target connection with the sender's connection ID attached.
type SignalDeliveryMessage struct {
	Type     string          `json:"type"`
	Signal   json.RawMessage `json:"signal"`
	From     string          `json:"from"`
	UserName string          `json:"user_name,omitempty"`
}

// AudioToggledMessage is the relayed form of ToggleAudioMessage.
type AudioToggledMessage struct {
	Type         string `json:"type"`
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	IsAudioOn    bool   `json:"is_audio_on"`
}

// VideoToggledMessage is the relayed form of ToggleVideoMessage.
type VideoToggledMessage struct {
	Type         string `json:"type"`
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	IsVideoOn    bool   `json:"is_video_on"`
}

// ErrorMessage is sent to the offending client only; one client's bad
// input never surfaces to other connections.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// NewErrorMessage creates a new error message.
func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Code:    code,
		Message: message,
	}
}
