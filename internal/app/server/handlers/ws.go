package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/registry"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/server/ws"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/services"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WSHandler drives the connection lifecycle: snapshot push on connect,
// identity announcement, in-order event dispatch, deregistration on
// disconnect.
type WSHandler struct {
	hub       *registry.Registry
	directory *services.PresenceDirectory
	router    *services.EventRouter
}

func NewWSHandler(
	hub *registry.Registry,
	directory *services.PresenceDirectory,
	router *services.EventRouter,
) *WSHandler {
	return &WSHandler{
		hub:       hub,
		directory: directory,
		router:    router,
	}
}

func (s *WSHandler) Handler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	span := trace.SpanFromContext(r.Context())
	sessionCtx := context.WithoutCancel(r.Context())
	ctx, cancel := context.WithCancel(sessionCtx)
	defer cancel()
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // tighten later
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ErrorContext(r.Context(), "ws handler - upgrade - ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetCloseHandler(func(code int, text string) error {
		cancel()
		return nil
	})
	socket := ws.NewWebSocket(ctx, log, conn)

	connID := uuid.NewString()
	span.SetAttributes(attribute.String("conn.id", connID))
	client := ws.NewClient(ctx, socket, connID)
	defer client.Close()
	s.hub.Add(client)
	defer s.hub.Remove(client)
	log.InfoContext(r.Context(), "ws handler - ws connection established", "conn_id", connID)

	// The snapshot goes out before anything else so the client can render who
	// is online without waiting for its own announcement.
	if err := s.hub.EmitTo(ctx, connID, domain.SignalSnapshot, s.directory.Snapshot(ctx)); err != nil {
		log.ErrorContext(ctx, "ws handler - snapshot push failed", "conn_id", connID, "err", err)
	}

	// Transport-detected drop: deregister with the identity the connection
	// carries, if it ever announced one.
	defer func() {
		if userID := client.UserID(); userID != "" {
			s.directory.Deregister(sessionCtx, userID)
		}
		log.Info("ws handler - ws closed", "conn_id", connID)
	}()

	// Events from one connection are handled in arrival order; no goroutine
	// per message.
	socket.ReadLoop(func(data []byte) {
		s.dispatch(ctx, log, client, data)
	})
}

func (s *WSHandler) dispatch(ctx context.Context, log *slog.Logger, client *ws.RuntimeClient, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.ErrorContext(ctx, "ws handler - dispatch - malformed envelope", "conn_id", client.ID(), "err", err)
		return
	}
	switch env.Event {
	case domain.EventAnnounce:
		var userID string
		if err := json.Unmarshal(env.Data, &userID); err != nil || userID == "" {
			// Never promoted to identified; the connection stays anonymous.
			log.ErrorContext(ctx, "ws handler - dispatch - announcement missing user id", "conn_id", client.ID())
			return
		}
		client.SetUserID(userID)
		s.directory.Register(ctx, userID, client.ID())

	case domain.EventSendMessage:
		ev, err := domain.DecodeMessage(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad message payload", "conn_id", client.ID(), "err", err)
			return
		}
		s.router.Route(ctx, ev)

	case domain.EventSendFollow:
		ev, err := domain.DecodeFollow(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad follow payload", "conn_id", client.ID(), "err", err)
			return
		}
		s.router.Route(ctx, ev)

	case domain.EventSendLike:
		ev, err := domain.DecodeLike(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad like payload", "conn_id", client.ID(), "err", err)
			return
		}
		s.router.Route(ctx, ev)

	case domain.EventSendComment:
		ev, err := domain.DecodeComment(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad comment payload", "conn_id", client.ID(), "err", err)
			return
		}
		s.router.Route(ctx, ev)

	case domain.EventSendTags:
		evs, skipped, err := domain.DecodeTags(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad tags payload", "conn_id", client.ID(), "err", err)
			return
		}
		if skipped > 0 {
			log.ErrorContext(ctx, "ws handler - dispatch - malformed tag items dropped", "conn_id", client.ID(), "dropped", skipped)
		}
		s.router.RouteTags(ctx, evs)

	case domain.EventSendBlock:
		ev, err := domain.DecodeBlock(env.Data)
		if err != nil {
			log.ErrorContext(ctx, "ws handler - dispatch - bad block payload", "conn_id", client.ID(), "err", err)
			return
		}
		s.router.Route(ctx, ev)

	case domain.EventManualDisconnect:
		if userID := client.UserID(); userID != "" {
			s.directory.Deregister(ctx, userID)
			client.SetUserID("")
		}

	default:
		log.WarnContext(ctx, "ws handler - dispatch - unknown event", "conn_id", client.ID(), "event", env.Event)
	}
}
