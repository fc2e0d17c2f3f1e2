package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/contracts"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
)

// FallbackPublisher hands offline notifications to the pending stream; the
// dispatch worker performs the actual webhook call. One entry per event, no
// retry state.
type FallbackPublisher struct {
	log   *slog.Logger
	queue contracts.EventQueue
}

func NewFallbackPublisher(log *slog.Logger, queue contracts.EventQueue) *FallbackPublisher {
	return &FallbackPublisher{
		log:   log,
		queue: queue,
	}
}

func (p *FallbackPublisher) Deliver(ctx context.Context, recipientID string, payload json.RawMessage) error {
	data, err := json.Marshal(domain.PendingNotification{
		RecipientID: recipientID,
		Payload:     payload,
	})
	if err != nil {
		return err
	}
	if err := p.queue.Publish(ctx, data); err != nil {
		return err
	}
	p.log.InfoContext(ctx, "fallback - deliver - notification queued", "recipient_id", recipientID)
	return nil
}
