package contracts

import (
	"context"
)

type EventQueue interface {
	// Producer side (Event Router)
	Publish(ctx context.Context, payload []byte) error
	// Consumer side (Worker Service)
	// Subscribe handles the reliable reading from the Redis Stream
	Subscribe(ctx context.Context, conGroup string, handler func(ctx context.Context, messageID string, data []byte) error) error
	// Acknowledge tells the stream a message has been picked up for processing
	Acknowledge(ctx context.Context, conGroup, mesgID string) error
	// DeleteMessage removes a processed message from the stream
	DeleteMessage(ctx context.Context, mesgID string) error
}
