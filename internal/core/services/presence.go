package services

import (
	"context"
	"log/slog"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/contracts"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type IPresenceDirectory interface {
	// Register stores/overwrites the user's entry and announces them online.
	Register(ctx context.Context, userID, connID string)
	// Deregister removes the entry if present and announces the user offline.
	Deregister(ctx context.Context, userID string)
	// Resolve returns the user's live connection id; absent covers empty ids,
	// missing entries and store failures alike.
	Resolve(ctx context.Context, userID string) (string, bool)
	// Snapshot enumerates every registered user id, store order.
	Snapshot(ctx context.Context) []string
}

var presenceTracer = otel.Tracer("presence-directory")

// PresenceDirectory owns the user → connection mapping. The backing store is
// persistence only; no other component mutates entries. Store failures are
// logged and swallowed: presence updates are best-effort, never fatal to the
// caller.
type PresenceDirectory struct {
	log     *slog.Logger
	store   contracts.DirectoryStore
	gateway contracts.Gateway
}

func NewPresenceDirectory(
	log *slog.Logger,
	store contracts.DirectoryStore,
	gateway contracts.Gateway,
) *PresenceDirectory {
	return &PresenceDirectory{
		log:     log,
		store:   store,
		gateway: gateway,
	}
}

func (d *PresenceDirectory) Register(ctx context.Context, userID, connID string) {
	ctx, span := presenceTracer.Start(ctx, "PresenceDirectory.Register", trace.WithAttributes(
		attribute.String("user_id", userID),
		attribute.String("conn_id", connID),
	))
	defer span.End()
	// Last writer wins: a reconnect overwrites the prior entry.
	if err := d.store.Set(ctx, userID, connID); err != nil {
		span.RecordError(err)
		d.log.ErrorContext(ctx, "presence - register - store set failed", "user_id", userID, "conn_id", connID, "err", err)
		return
	}
	d.log.InfoContext(ctx, "presence - register - user online", "user_id", userID, "conn_id", connID)
	d.gateway.Broadcast(ctx, domain.SignalUserOnline, userID)
}

func (d *PresenceDirectory) Deregister(ctx context.Context, userID string) {
	ctx, span := presenceTracer.Start(ctx, "PresenceDirectory.Deregister", trace.WithAttributes(
		attribute.String("user_id", userID),
	))
	defer span.End()
	if err := d.store.Del(ctx, userID); err != nil {
		span.RecordError(err)
		d.log.ErrorContext(ctx, "presence - deregister - store del failed", "user_id", userID, "err", err)
	}
	// The user is gone regardless of whether the entry outlived them.
	d.log.InfoContext(ctx, "presence - deregister - user removed", "user_id", userID)
	d.gateway.Broadcast(ctx, domain.SignalUserRemoved, userID)
}

func (d *PresenceDirectory) Resolve(ctx context.Context, userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	connID, err := d.store.Get(ctx, userID)
	if err != nil {
		if err != domain.ErrEntryNotFound {
			d.log.ErrorContext(ctx, "presence - resolve - store get failed", "user_id", userID, "err", err)
		}
		return "", false
	}
	return connID, true
}

func (d *PresenceDirectory) Snapshot(ctx context.Context) []string {
	ctx, span := presenceTracer.Start(ctx, "PresenceDirectory.Snapshot")
	defer span.End()
	users, err := d.store.Keys(ctx)
	if err != nil {
		span.RecordError(err)
		d.log.ErrorContext(ctx, "presence - snapshot - store keys failed", "err", err)
		// A degraded snapshot must still frame as an empty list, not null.
		return []string{}
	}
	span.SetAttributes(attribute.Int("user_count", len(users)))
	return users
}
