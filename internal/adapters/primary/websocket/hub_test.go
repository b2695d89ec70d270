package websocket

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	return hub
}

func registerTestClient(t *testing.T, hub *Hub, userID int64) *Client {
	t.Helper()
	client := NewClient(hub, nil, userID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	hub.Register <- client

	require.Eventually(t, func() bool {
		return hub.IsUserConnected(userID)
	}, time.Second, 5*time.Millisecond)

	return client
}

func receiveEvent(t *testing.T, client *Client) domain.Event {
	t.Helper()
	select {
	case event := <-client.Send:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return domain.Event{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case event := <-client.Send:
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastsTicketEventsToAllUsers(t *testing.T) {
	hub := newTestHub(t)
	alice := registerTestClient(t, hub, 1)
	bob := registerTestClient(t, hub, 2)

	require.NoError(t, hub.Broadcast(domain.Event{Type: domain.EventTicketUpdated, TicketID: 42}))

	event := receiveEvent(t, alice)
	assert.Equal(t, domain.EventTicketUpdated, event.Type)
	assert.Equal(t, int64(42), event.TicketID)

	event = receiveEvent(t, bob)
	assert.Equal(t, domain.EventTicketUpdated, event.Type)
}

func TestHubScopesFlagEventsToOwner(t *testing.T) {
	hub := newTestHub(t)
	alice := registerTestClient(t, hub, 1)
	bob := registerTestClient(t, hub, 2)

	require.NoError(t, hub.Broadcast(domain.Event{Type: domain.EventFlagsChanged, TicketID: 42, UserID: 1}))

	event := receiveEvent(t, alice)
	assert.Equal(t, domain.EventFlagsChanged, event.Type)
	assert.Equal(t, int64(1), event.UserID)

	assertNoEvent(t, bob)
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := newTestHub(t)
	first := registerTestClient(t, hub, 1)
	second := registerTestClient(t, hub, 1)

	assert.Equal(t, 2, hub.GetClientCount())

	require.NoError(t, hub.Broadcast(domain.Event{Type: domain.EventFlagsChanged, UserID: 1}))

	receiveEvent(t, first)
	receiveEvent(t, second)
}

func TestHubUnregister(t *testing.T) {
	hub := newTestHub(t)
	client := registerTestClient(t, hub, 1)

	hub.Unregister <- client

	require.Eventually(t, func() bool {
		return !hub.IsUserConnected(1)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.GetClientCount())
}
