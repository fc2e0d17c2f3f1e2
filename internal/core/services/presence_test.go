package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

// --- Fakes ---

type fakeStore struct {
	entries map[string]string
	fail    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (s *fakeStore) Set(ctx context.Context, userID, connID string) error {
	if s.fail {
		return errStore
	}
	s.entries[userID] = connID
	return nil
}

func (s *fakeStore) Get(ctx context.Context, userID string) (string, error) {
	if s.fail {
		return "", errStore
	}
	connID, ok := s.entries[userID]
	if !ok {
		return "", domain.ErrEntryNotFound
	}
	return connID, nil
}

func (s *fakeStore) Del(ctx context.Context, userID string) error {
	if s.fail {
		return errStore
	}
	delete(s.entries, userID)
	return nil
}

func (s *fakeStore) Keys(ctx context.Context) ([]string, error) {
	if s.fail {
		return nil, errStore
	}
	users := make([]string, 0, len(s.entries))
	for userID := range s.entries {
		users = append(users, userID)
	}
	return users, nil
}

type emit struct {
	ConnID  string
	Signal  string
	Payload any
}

type fakeGateway struct {
	emits      []emit
	broadcasts []emit
}

func (g *fakeGateway) EmitTo(ctx context.Context, connID, signal string, payload any) error {
	g.emits = append(g.emits, emit{ConnID: connID, Signal: signal, Payload: payload})
	return nil
}

func (g *fakeGateway) Broadcast(ctx context.Context, signal string, payload any) {
	g.broadcasts = append(g.broadcasts, emit{Signal: signal, Payload: payload})
}

func (g *fakeGateway) broadcastSignals() []string {
	signals := make([]string, 0, len(g.broadcasts))
	for _, b := range g.broadcasts {
		signals = append(signals, b.Signal)
	}
	return signals
}

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// --- Tests ---

func TestRegisterThenResolve(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{}
	directory := services.NewPresenceDirectory(nopLogger, store, gateway)

	directory.Register(context.Background(), "alice", "conn-1")

	connID, ok := directory.Resolve(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, "conn-1", connID)
	require.Len(t, gateway.broadcasts, 1)
	assert.Equal(t, domain.SignalUserOnline, gateway.broadcasts[0].Signal)
	assert.Equal(t, "alice", gateway.broadcasts[0].Payload)
}

func TestRegisterOverwritesPriorConnection(t *testing.T) {
	store := newFakeStore()
	directory := services.NewPresenceDirectory(nopLogger, store, &fakeGateway{})

	directory.Register(context.Background(), "alice", "conn-1")
	directory.Register(context.Background(), "alice", "conn-2")

	connID, ok := directory.Resolve(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", connID)
}

func TestDeregisterIsIdempotent(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{}
	directory := services.NewPresenceDirectory(nopLogger, store, gateway)

	directory.Register(context.Background(), "alice", "conn-1")
	directory.Deregister(context.Background(), "alice")
	directory.Deregister(context.Background(), "alice")

	_, ok := directory.Resolve(context.Background(), "alice")
	assert.False(t, ok)
	// online, then removed twice; the second removal is still announced
	assert.Equal(t, []string{
		domain.SignalUserOnline,
		domain.SignalUserRemoved,
		domain.SignalUserRemoved,
	}, gateway.broadcastSignals())
}

func TestResolveEmptyUserID(t *testing.T) {
	store := newFakeStore()
	directory := services.NewPresenceDirectory(nopLogger, store, &fakeGateway{})

	connID, ok := directory.Resolve(context.Background(), "")
	assert.False(t, ok)
	assert.Empty(t, connID)
}

func TestResolveStoreFailureReadsAsAbsent(t *testing.T) {
	store := newFakeStore()
	directory := services.NewPresenceDirectory(nopLogger, store, &fakeGateway{})
	directory.Register(context.Background(), "alice", "conn-1")

	store.fail = true
	_, ok := directory.Resolve(context.Background(), "alice")
	assert.False(t, ok)
}

func TestRegisterStoreFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.fail = true
	gateway := &fakeGateway{}
	directory := services.NewPresenceDirectory(nopLogger, store, gateway)

	directory.Register(context.Background(), "alice", "conn-1")

	// no entry, no online announcement
	store.fail = false
	_, ok := directory.Resolve(context.Background(), "alice")
	assert.False(t, ok)
	assert.Empty(t, gateway.broadcasts)
}

func TestDeregisterStoreFailureStillAnnouncesRemoval(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{}
	directory := services.NewPresenceDirectory(nopLogger, store, gateway)
	directory.Register(context.Background(), "alice", "conn-1")

	store.fail = true
	directory.Deregister(context.Background(), "alice")

	require.Len(t, gateway.broadcasts, 2)
	assert.Equal(t, domain.SignalUserRemoved, gateway.broadcasts[1].Signal)
}

func TestSnapshotListsRegisteredUsers(t *testing.T) {
	store := newFakeStore()
	directory := services.NewPresenceDirectory(nopLogger, store, &fakeGateway{})

	directory.Register(context.Background(), "alice", "conn-1")
	directory.Register(context.Background(), "bob", "conn-2")

	assert.ElementsMatch(t, []string{"alice", "bob"}, directory.Snapshot(context.Background()))
}

func TestSnapshotStoreFailureReturnsEmpty(t *testing.T) {
	store := newFakeStore()
	store.fail = true
	directory := services.NewPresenceDirectory(nopLogger, store, &fakeGateway{})

	// non-nil so the degraded snapshot frames as [] on the wire, not null
	assert.Equal(t, []string{}, directory.Snapshot(context.Background()))
}
