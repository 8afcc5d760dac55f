package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub spins up a server that upgrades every request into a registered
// hub connection, then dials it once.
func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection(raw, zerolog.Nop())
		id := hub.Register(conn)
		go conn.WritePump()
		go func() {
			conn.ReadPump()
			hub.Unregister(id)
		}()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestHubBroadcastReachesViewers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Size() == 1 }, time.Second, 10*time.Millisecond)

	payload, err := json.Marshal(LeaderboardUpdatePayload{
		Leaderboard: "sg60",
		Top: []LeaderboardEntry{
			{Rank: 1, Name: "Bob", Score: 9, TotalTime: 61},
		},
	})
	require.NoError(t, err)

	delivered := hub.Broadcast(Message{Type: TypeLeaderboardUpdate, Payload: payload})
	assert.Equal(t, 1, delivered)

	client.SetReadDeadline(time.Now().Add(time.Second))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, TypeLeaderboardUpdate, msg.Type)

	var update LeaderboardUpdatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &update))
	require.Len(t, update.Top, 1)
	assert.Equal(t, "Bob", update.Top[0].Name)
	assert.Equal(t, 1, update.Top[0].Rank)
}

func TestHubPingGetsPong(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Size() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, client.WriteJSON(Message{Type: TypePing}))

	client.SetReadDeadline(time.Now().Add(time.Second))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, TypePong, msg.Type)
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Size() == 1 }, time.Second, 10*time.Millisecond)

	client.Close()
	require.Eventually(t, func() bool { return hub.Size() == 0 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, hub.Broadcast(Message{Type: TypeLeaderboardUpdate}))
}
