package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/contracts"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
)

// NotificationWorker drains the pending-notification stream and performs the
// single webhook call per entry. Delivery is best-effort: a failed call is
// logged and the entry is acknowledged anyway, no retry state is kept.
type NotificationWorker struct {
	log      *slog.Logger
	queue    contracts.EventQueue
	sink     contracts.Fallback
	conGroup string
}

func NewNotificationWorker(
	log *slog.Logger,
	queue contracts.EventQueue,
	sink contracts.Fallback,
	conGroup string,
) contracts.AsyncWorker {
	return &NotificationWorker{
		log:      log,
		queue:    queue,
		sink:     sink,
		conGroup: conGroup,
	}
}

func (w *NotificationWorker) Run(ctx context.Context) error {
	if err := w.queue.Subscribe(ctx, w.conGroup, w.ProcessMessage); err != nil {
		return err
	}
	w.log.InfoContext(ctx, "worker - run - subscribed to pending notifications", "group", w.conGroup)
	return nil
}

func (w *NotificationWorker) ProcessMessage(
	ctx context.Context,
	messageID string,
	raw []byte,
) error {
	var pending domain.PendingNotification
	if err := json.Unmarshal(raw, &pending); err != nil {
		w.log.Error("worker - process message - wrong payload", "message_id", messageID)
	} else if err := w.sink.Deliver(ctx, pending.RecipientID, pending.Payload); err != nil {
		w.log.ErrorContext(ctx, "worker - process message - webhook delivery failed", "message_id", messageID, "recipient_id", pending.RecipientID, "err", err)
	}
	// Acknowledge the message (XACK) whatever happened above: the contract is
	// one attempt, then the entry leaves the Pending Entries List (PEL).
	if err := w.queue.Acknowledge(ctx, w.conGroup, messageID); err != nil {
		w.log.ErrorContext(ctx, "worker - process message - acknowledge message failed", "message_id", messageID)
		return err
	}
	// Delete the message from the stream (XDEL) to keep it memory-efficient.
	if err := w.queue.DeleteMessage(ctx, messageID); err != nil {
		w.log.ErrorContext(ctx, "worker - process message - delete message failed", "message_id", messageID)
	}
	return nil
}
