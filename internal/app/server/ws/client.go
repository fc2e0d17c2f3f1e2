package ws

import (
	"context"
	"errors"
	"sync"
)

// RuntimeClient wraps one physical connection. The connection id is minted at
// upgrade time; the announced user id arrives later (or never) and lives here
// as connection-scoped state, since the transport itself has no memory of it.
type RuntimeClient struct {
	ctx    context.Context
	cancel context.CancelFunc
	ws     *WebSocket
	connID string
	userID string
	out    chan []byte
	once   sync.Once
}

func NewClient(
	parent context.Context,
	ws *WebSocket,
	connID string,
) *RuntimeClient {
	ctx, cancel := context.WithCancel(parent)
	c := &RuntimeClient{
		ctx:    ctx,
		cancel: cancel,
		ws:     ws,
		connID: connID,
		out:    make(chan []byte, 256),
	}
	go c.writeLoop()
	return c
}

func (c *RuntimeClient) ID() string { return c.connID }

// UserID/SetUserID are touched only from the connection's read loop.
func (c *RuntimeClient) UserID() string          { return c.userID }
func (c *RuntimeClient) SetUserID(userID string) { c.userID = userID }

func (c *RuntimeClient) Send(ctx context.Context, data []byte) error {
	select {
	case c.out <- data:
		return nil
	case <-c.ctx.Done():
		return errors.New("client closed")
	}
}

func (c *RuntimeClient) Close() {
	// out is never closed: a concurrent Send racing Close must not panic.
	// Cancellation alone stops the write loop; buffered sends are dropped.
	c.once.Do(func() {
		c.cancel()
		c.ws.Close()
	})
}

func (c *RuntimeClient) writeLoop() {
	defer c.Close()
	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.out:
			_ = c.ws.WriteMessage(data)
		}
	}
}
