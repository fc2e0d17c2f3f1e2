package contracts

import "context"

type AsyncWorker interface {
	// Run starts the consumer loop for the pending-notification stream
	Run(ctx context.Context) error
	// ProcessMessage receives one queued notification,
	// performs the webhook delivery,
	// acknowledges and deletes the stream entry
	ProcessMessage(ctx context.Context, msgID string, rawData []byte) error
}
