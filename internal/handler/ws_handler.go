package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/domain"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/hub"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/service"
	pkglog "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/log"
)

// WSHandler upgrades WebSocket connections and routes signaling messages
// to the relay service.
type WSHandler struct {
	hub      *hub.Hub
	service  service.RelayService
	upgrader websocket.Upgrader
}

// NewWSHandler creates a WebSocket handler with an origin allow-list.
func NewWSHandler(h *hub.Hub, svc service.RelayService, origins *OriginChecker) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.Check,
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and message routing.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := pkglog.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	connID := uuid.New().String()
	client := &hub.Client{
		ID:      connID,
		Hub:     h.hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: domain.NewSession(connID),
	}

	// The request context dies when this handler returns, so carry only its
	// logger (request ID, client IP) for the connection's lifetime.
	client.SetContext(pkglog.WithLogger(context.Background(), l))

	// Transport disconnect is an implicit leave-room for every joined room.
	client.SetDisconnectHandler(func(c *hub.Client) {
		if err := h.service.HandleDisconnect(c.Context(), c.Session); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, c.ID).Msg("disconnect cleanup error")
		}
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// handleMessage validates the envelope and payload shape, then dispatches
// to the service. Malformed input earns the sender an error message and a
// logged warning; it never reaches other connections.
func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	ctx := client.Context()
	l := pkglog.Ctx(ctx)

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		l.Warn().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("invalid message envelope")
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid message format"))
		return
	}

	switch base.Type {
	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.RoomID == "" {
			h.rejectMalformed(client, base.Type)
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client.Session, msg.RoomID, msg.UserID, msg.UserName); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("join room failed")
		}

	case domain.MsgTypeSignal:
		var msg domain.SignalMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.To == "" {
			h.rejectMalformed(client, base.Type)
			return
		}
		if err := h.service.HandleSignal(ctx, client.Session, msg.To, msg.Signal, msg.UserName); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("signal relay failed")
		}

	case domain.MsgTypeLeaveRoom:
		var msg domain.LeaveRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.RoomID == "" {
			h.rejectMalformed(client, base.Type)
			return
		}
		if err := h.service.HandleLeaveRoom(ctx, client.Session, msg.RoomID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("leave room failed")
		}

	case domain.MsgTypeToggleAudio:
		var msg domain.ToggleAudioMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.RoomID == "" {
			h.rejectMalformed(client, base.Type)
			return
		}
		if err := h.service.HandleToggleAudio(ctx, client.Session, msg.RoomID, msg.IsAudioOn); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("toggle audio failed")
		}

	case domain.MsgTypeToggleVideo:
		var msg domain.ToggleVideoMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.RoomID == "" {
			h.rejectMalformed(client, base.Type)
			return
		}
		if err := h.service.HandleToggleVideo(ctx, client.Session, msg.RoomID, msg.IsVideoOn); err != nil {
			l.Error().Err(err).Str(pkglog.FieldConnID, client.ID).Msg("toggle video failed")
		}

	case domain.MsgTypePing:
		client.SendMessage(map[string]string{"type": domain.MsgTypePong})

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Unknown message type"))
	}
}

func (h *WSHandler) rejectMalformed(client *hub.Client, msgType string) {
	l := pkglog.Ctx(client.Context())
	l.Warn().
		Str(pkglog.FieldConnID, client.ID).
		Str(pkglog.FieldMsgType, msgType).
		Msg("malformed message payload")
	client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid "+msgType+" message"))
}

// RegisterRoutes registers the WebSocket route.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
