package contracts

import (
	"context"
	"encoding/json"
)

// Fallback is the out-of-band delivery path used when the recipient has no
// live connection. Best-effort: a failed delivery is logged by the caller
// and never retried.
type Fallback interface {
	Deliver(ctx context.Context, recipientID string, payload json.RawMessage) error
}
