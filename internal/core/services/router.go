package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/contracts"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type IEventRouter interface {
	// Route delivers one event: direct emit, fallback dispatch or silent drop.
	Route(ctx context.Context, ev domain.Event)
	// RouteTags routes a batched tag action; failures are isolated per item.
	RouteTags(ctx context.Context, evs []domain.TagEvent)
}

var routerTracer = otel.Tracer("event-router")

// EventRouter decides the delivery path per inbound event. Online recipients
// get direct signals; offline recipients get the fallback path for messages
// and blocks, a silent drop for the soft social kinds. No error here ever
// reaches the originating connection.
type EventRouter struct {
	log       *slog.Logger
	directory IPresenceDirectory
	gateway   contracts.Gateway
	profiles  domain.ProfileRepository
	fallback  contracts.Fallback
}

func NewEventRouter(
	log *slog.Logger,
	directory *PresenceDirectory,
	gateway contracts.Gateway,
	profiles domain.ProfileRepository,
	fallback contracts.Fallback,
) *EventRouter {
	return &EventRouter{
		log:       log,
		directory: directory,
		gateway:   gateway,
		profiles:  profiles,
		fallback:  fallback,
	}
}

func (r *EventRouter) Route(ctx context.Context, ev domain.Event) {
	ctx, span := routerTracer.Start(ctx, "EventRouter.Route", trace.WithAttributes(
		attribute.String("event_kind", string(ev.Kind())),
	))
	defer span.End()
	recipient := ev.Recipient()
	if recipient == "" {
		span.SetStatus(codes.Error, "missing recipient")
		r.log.ErrorContext(ctx, "router - route - event missing recipient, dropped", "kind", ev.Kind())
		return
	}
	span.SetAttributes(attribute.String("recipient_id", recipient))
	connID, online := r.directory.Resolve(ctx, recipient)
	if online {
		r.deliver(ctx, connID, ev)
		return
	}
	switch ev.Kind() {
	case domain.KindMessage, domain.KindBlock:
		if err := r.fallback.Deliver(ctx, recipient, ev.Body()); err != nil {
			span.RecordError(err)
			r.log.ErrorContext(ctx, "router - route - fallback delivery failed", "recipient_id", recipient, "kind", ev.Kind(), "err", err)
		}
	default:
		// Social notifications are soft; offline recipients miss them.
		r.log.InfoContext(ctx, "router - route - recipient offline, dropping", "recipient_id", recipient, "kind", ev.Kind())
	}
}

func (r *EventRouter) RouteTags(ctx context.Context, evs []domain.TagEvent) {
	ctx, span := routerTracer.Start(ctx, "EventRouter.RouteTags", trace.WithAttributes(
		attribute.Int("batch_size", len(evs)),
	))
	defer span.End()
	for _, ev := range evs {
		r.Route(ctx, ev)
	}
}

func (r *EventRouter) deliver(ctx context.Context, connID string, ev domain.Event) {
	switch ev := ev.(type) {
	case domain.MessageEvent:
		payload := r.enrich(ctx, ev)
		// Paired signals: a toast-style alert plus the content itself.
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalMessageNotification, payload)
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalMessage, payload)
	case domain.FollowEvent:
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalFollowNotification, ev.Payload)
	case domain.LikeEvent:
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalLikeNotification, ev.Payload)
	case domain.TagEvent:
		// Tags ride the like signal on the client side.
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalLikeNotification, ev.Payload)
	case domain.CommentEvent:
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalCommentNotification, ev.Payload)
	case domain.BlockEvent:
		_ = r.gateway.EmitTo(ctx, connID, domain.SignalBlockNotification, ev.Payload)
	}
}

// enrich stamps the sender's display name onto a direct message. Lookup or
// decode failure degrades to the unenriched payload.
func (r *EventRouter) enrich(ctx context.Context, ev domain.MessageEvent) json.RawMessage {
	if ev.SenderID == "" {
		return ev.Payload
	}
	profile, err := r.profiles.FindByID(ctx, ev.SenderID)
	if err != nil {
		r.log.WarnContext(ctx, "router - enrich - profile lookup failed", "sender_id", ev.SenderID, "err", err)
		return ev.Payload
	}
	var body map[string]any
	if err := json.Unmarshal(ev.Payload, &body); err != nil {
		r.log.WarnContext(ctx, "router - enrich - payload decode failed", "sender_id", ev.SenderID, "err", err)
		return ev.Payload
	}
	body["senderName"] = profile.DisplayName()
	enriched, err := json.Marshal(body)
	if err != nil {
		return ev.Payload
	}
	return enriched
}
