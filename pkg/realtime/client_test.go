package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// wsServer upgrades every request and hands the connection to handle.
func wsServer(t *testing.T, handle func(r *http.Request, conn *websocket.Conn)) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(r, conn)
	}))
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}

func testConfig(u string) Config {
	cfg := DefaultConfig(u)
	cfg.ConnectTimeout = time.Second
	cfg.HeartbeatInterval = 0
	cfg.ReconnectBaseDelay = 10 * time.Millisecond
	cfg.ReconnectMaxDelay = 20 * time.Millisecond
	cfg.ReconnectJitter = 0
	return cfg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("ws://localhost:5000/api/ws")
	assert.Equal(t, 2*time.Second, cfg.ReconnectBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.ReconnectMaxDelay)
	assert.Equal(t, -1, cfg.MaxReconnectAttempts)
}

func TestBackoff(t *testing.T) {
	base, max := 2*time.Second, 30*time.Second
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 30 * time.Second, 30 * time.Second}
	for n, w := range want {
		assert.Equal(t, w, Backoff(n, base, max), "attempt %d", n)
	}
}

func TestConnectSendsTokenAndDispatches(t *testing.T) {
	var gotToken atomic.Value
	_, u := wsServer(t, func(r *http.Request, conn *websocket.Conn) {
		gotToken.Store(r.URL.Query().Get("token"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"approval_submitted","payload":{"contentId":"p_7","title":"New post"}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"notification","payload":{"message":"hi"}}`))
		_, _, _ = conn.ReadMessage()
	})

	c := NewClient(testConfig(u))
	var mu sync.Mutex
	var typed []Event
	var all []EventType
	c.On(EventApprovalSubmitted, func(e Event) {
		mu.Lock()
		typed = append(typed, e)
		mu.Unlock()
	})
	c.On(EventAny, func(e Event) {
		mu.Lock()
		all = append(all, e.Type)
		mu.Unlock()
	})

	require.NoError(t, c.Connect(context.Background(), "tok-1"))
	defer c.Close()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(all) == 2
	})
	assert.Equal(t, "tok-1", gotToken.Load())
	mu.Lock()
	assert.Equal(t, []EventType{EventApprovalSubmitted, EventNotification}, all)
	require.Len(t, typed, 1)
	assert.Equal(t, "p_7", typed[0].Field("contentId"))
	mu.Unlock()
	assert.Equal(t, int64(2), c.Stats().EventsReceived)
	assert.True(t, c.IsConnected())
}

func TestUnsubscribe(t *testing.T) {
	c := NewClient(testConfig("ws://unused"))
	var n atomic.Int32
	off := c.On(EventNotification, func(Event) { n.Add(1) })
	c.dispatch(Event{Type: EventNotification})
	off()
	c.dispatch(Event{Type: EventNotification})
	assert.Equal(t, int32(1), n.Load())
}

func TestReconnectsAfterDrop(t *testing.T) {
	var connections atomic.Int32
	_, u := wsServer(t, func(_ *http.Request, conn *websocket.Conn) {
		if connections.Add(1) == 1 {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"notification"}`))
		_, _, _ = conn.ReadMessage()
	})

	c := NewClient(testConfig(u))
	var got atomic.Int32
	c.On(EventNotification, func(Event) { got.Add(1) })
	require.NoError(t, c.Connect(context.Background(), ""))
	defer c.Close()

	waitFor(t, func() bool { return got.Load() == 1 })
	assert.Equal(t, 1, c.Stats().ReconnectCount)
	assert.NotEmpty(t, c.Stats().LastError)
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	srv, u := wsServer(t, func(*http.Request, *websocket.Conn) {})
	cfg := testConfig(u)
	cfg.MaxReconnectAttempts = 2

	c := NewClient(cfg)
	require.NoError(t, c.Connect(context.Background(), ""))
	srv.Close()

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	assert.Equal(t, StateError, c.State())
	require.NoError(t, c.Close())
}

func TestConnectFailure(t *testing.T) {
	c := NewClient(testConfig("ws://127.0.0.1:1/api/ws"))
	err := c.Connect(context.Background(), "")
	assert.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.NoError(t, c.Close())
}

func TestSendWithoutConnection(t *testing.T) {
	c := NewClient(testConfig("ws://unused"))
	assert.ErrorIs(t, c.Send(EventHeartbeat, nil), ErrNotConnected)
}

func TestCloseStopsClient(t *testing.T) {
	_, u := wsServer(t, func(_ *http.Request, conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	c := NewClient(testConfig(u))
	require.NoError(t, c.Connect(context.Background(), ""))
	require.NoError(t, c.Send(EventHeartbeat, nil))
	require.NoError(t, c.Close())
	assert.Equal(t, StateDisconnected, c.State())
	assert.Equal(t, int64(1), c.Stats().EventsSent)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "reconnecting", StateReconnecting.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
}
