package registry_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/registry"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	id   string
	sent [][]byte
}

func (c *fakeClient) ID() string { return c.id }

func (c *fakeClient) Send(ctx context.Context, data []byte) error {
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeClient) Close() {}

func TestEmitToFramesEnvelope(t *testing.T) {
	hub := registry.NewRegistry()
	client := &fakeClient{id: "conn-1"}
	hub.Add(client)

	err := hub.EmitTo(context.Background(), "conn-1", domain.SignalUserOnline, "alice")
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	var env domain.Envelope
	require.NoError(t, json.Unmarshal(client.sent[0], &env))
	assert.Equal(t, domain.SignalUserOnline, env.Event)
	assert.Equal(t, `"alice"`, string(env.Data))
}

func TestEmitToUnknownConnectionIsNoop(t *testing.T) {
	hub := registry.NewRegistry()

	err := hub.EmitTo(context.Background(), "conn-missing", domain.SignalUserOnline, "alice")
	assert.NoError(t, err)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := registry.NewRegistry()
	a := &fakeClient{id: "conn-a"}
	b := &fakeClient{id: "conn-b"}
	hub.Add(a)
	hub.Add(b)

	hub.Broadcast(context.Background(), domain.SignalUserRemoved, "alice")

	require.Len(t, a.sent, 1)
	require.Len(t, b.sent, 1)
	assert.Equal(t, a.sent[0], b.sent[0])
}

// slowClient mutates the table mid-send; the broadcast must not be holding
// the table lock at that point.
type slowClient struct {
	fakeClient
	hub *registry.Registry
}

func (c *slowClient) Send(ctx context.Context, data []byte) error {
	c.hub.Add(&fakeClient{id: "conn-late"})
	return c.fakeClient.Send(ctx, data)
}

func TestBroadcastDoesNotHoldLockDuringSend(t *testing.T) {
	hub := registry.NewRegistry()
	client := &slowClient{fakeClient: fakeClient{id: "conn-1"}, hub: hub}
	hub.Add(client)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(context.Background(), domain.SignalUserRemoved, "alice")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked a concurrent table mutation")
	}
	require.Len(t, client.sent, 1)
}

func TestRemoveStopsDelivery(t *testing.T) {
	hub := registry.NewRegistry()
	client := &fakeClient{id: "conn-1"}
	hub.Add(client)
	hub.Remove(client)

	require.NoError(t, hub.EmitTo(context.Background(), "conn-1", domain.SignalUserOnline, "alice"))
	hub.Broadcast(context.Background(), domain.SignalUserRemoved, "alice")

	assert.Empty(t, client.sent)
}
