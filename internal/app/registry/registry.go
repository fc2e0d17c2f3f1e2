package registry

import (
	"context"
	"sync"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/contracts"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
)

// Registry is the in-process connection table: connection_id → client. It is
// the gateway the directory and router emit through; delivery past this point
// is fire-and-forget.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]contracts.Client // connection_id → client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]contracts.Client),
	}
}

func (h *Registry) Add(c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID()] = c
}

func (h *Registry) Remove(c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.ID())
}

func (h *Registry) EmitTo(ctx context.Context, connID, signal string, payload any) error {
	h.mu.RLock()
	c := h.clients[connID]
	h.mu.RUnlock()
	if c == nil {
		// Connection already gone; nothing to deliver to.
		return nil
	}
	data, err := domain.EncodeSignal(signal, payload)
	if err != nil {
		return err
	}
	return c.Send(ctx, data)
}

func (h *Registry) Broadcast(ctx context.Context, signal string, payload any) {
	data, err := domain.EncodeSignal(signal, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	clients := make([]contracts.Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	// Sends run off the lock so one backed-up client cannot stall Add/Remove.
	for _, c := range clients {
		_ = c.Send(ctx, data)
	}
}
