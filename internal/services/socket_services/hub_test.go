package socket_services

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settle gives the hub loop time to process registrations and room joins
// arriving from separate connections before the test emits.
const settle = 100 * time.Millisecond

func newSocketServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, r.URL.Query().Get("user"), w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func emit(t *testing.T, conn *websocket.Conn, event Event) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(event))
}

func receive(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

// expectSilence asserts nothing arrives within a short window. The read
// deadline poisons the connection, so call this last on a given conn.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	err := conn.ReadJSON(&Event{})
	require.Error(t, err)
	var netErr net.Error
	if assert.ErrorAs(t, err, &netErr) {
		assert.True(t, netErr.Timeout(), "expected read timeout, got: %v", err)
	}
}

func TestRoomBroadcast(t *testing.T) {
	server := newSocketServer(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")
	carol := dial(t, server, "carol")

	emit(t, alice, Event{Name: EventJoinBoard, Board: "board-x"})
	emit(t, bob, Event{Name: EventJoinBoard, Board: "board-x"})
	emit(t, carol, Event{Name: EventJoinBoard, Board: "board-y"})
	time.Sleep(settle)

	emit(t, alice, Event{Name: EventTaskCreated, Board: "board-x"})

	got := receive(t, bob)
	assert.Equal(t, EventTaskCreated, got.Name)
	assert.Equal(t, "board-x", got.Board)

	// Exactly one delivery for bob, none for the sender or other rooms.
	expectSilence(t, bob)
	expectSilence(t, alice)
	expectSilence(t, carol)
}

func TestBroadcastToAllReachesEveryClient(t *testing.T) {
	server := newSocketServer(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")
	carol := dial(t, server, "carol")

	// Carol is in a room, bob is not; board-created reaches both.
	emit(t, carol, Event{Name: EventJoinBoard, Board: "board-y"})
	time.Sleep(settle)

	emit(t, alice, Event{Name: EventBoardCreated})

	assert.Equal(t, EventBoardCreated, receive(t, bob).Name)
	assert.Equal(t, EventBoardCreated, receive(t, carol).Name)
	expectSilence(t, alice)
}

func TestLeaveBoardStopsDelivery(t *testing.T) {
	server := newSocketServer(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	emit(t, alice, Event{Name: EventJoinBoard, Board: "board-x"})
	emit(t, bob, Event{Name: EventJoinBoard, Board: "board-x"})
	time.Sleep(settle)

	emit(t, bob, Event{Name: EventLeaveBoard, Board: "board-x"})
	time.Sleep(settle)

	emit(t, alice, Event{Name: EventColumnUpdated, Board: "board-x"})
	expectSilence(t, bob)
}

func TestCommentEventCarriesTaskID(t *testing.T) {
	server := newSocketServer(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	emit(t, alice, Event{Name: EventJoinBoard, Board: "board-x"})
	emit(t, bob, Event{Name: EventJoinBoard, Board: "board-x"})
	time.Sleep(settle)

	emit(t, alice, Event{Name: EventCommentCreated, Board: "board-x", Task: "task-1"})

	got := receive(t, bob)
	assert.Equal(t, EventCommentCreated, got.Name)
	assert.Equal(t, "task-1", got.Task)
}

func TestUnknownEventIgnored(t *testing.T) {
	server := newSocketServer(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	emit(t, alice, Event{Name: EventJoinBoard, Board: "board-x"})
	emit(t, bob, Event{Name: EventJoinBoard, Board: "board-x"})
	time.Sleep(settle)

	emit(t, alice, Event{Name: "board-exploded", Board: "board-x"})
	expectSilence(t, bob)
}
