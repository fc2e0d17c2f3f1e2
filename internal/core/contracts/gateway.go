package contracts

import (
	"context"
)

// Gateway is the thin adapter over the connection multiplexer. Delivery is
// fire-and-forget; nothing guards against a connection dropping mid-send.
type Gateway interface {
	// EmitTo sends one signal to a single connection.
	EmitTo(ctx context.Context, connID, signal string, payload any) error
	// Broadcast sends one signal to every attached connection.
	Broadcast(ctx context.Context, signal string, payload any)
}

// Client represents the minimal interface the gateway needs to talk to an
// individual WebSocket connection.
type Client interface {
	ID() string
	Send(ctx context.Context, data []byte) error
	Close()
}
