// Package realtime streams backend events over a websocket so the CLI can
// show new notifications and approval submissions as they happen.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/impactboard/admin-cli/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventType is the type field of a frame.
type EventType string

const (
	EventNotification      EventType = "notification"
	EventApprovalSubmitted EventType = "approval_submitted"
	EventApprovalDecided   EventType = "approval_decided"
	EventMessage           EventType = "message"
	EventHeartbeat         EventType = "heartbeat"
	EventPong              EventType = "pong"
	EventError             EventType = "error"

	// EventAny subscribes to every frame.
	EventAny EventType = ""
)

// Event is one {type, payload} frame.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Field returns a string field of an object payload.
func (e Event) Field(key string) string {
	obj, ok := e.Payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

// Config holds client settings.
type Config struct {
	URL                  string
	ConnectTimeout       time.Duration
	HeartbeatInterval    time.Duration
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	ReconnectJitter      time.Duration
	MaxReconnectAttempts int // negative means unlimited
}

// DefaultConfig returns the settings used by "notifications watch".
func DefaultConfig(wsURL string) Config {
	return Config{
		URL:                  wsURL,
		ConnectTimeout:       15 * time.Second,
		HeartbeatInterval:    30 * time.Second,
		ReconnectBaseDelay:   2 * time.Second,
		ReconnectMaxDelay:    30 * time.Second,
		ReconnectJitter:      time.Second,
		MaxReconnectAttempts: -1,
	}
}

// State is the connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateError
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// Stats holds connection statistics
type Stats struct {
	EventsReceived int64
	EventsSent     int64
	ReconnectCount int
	LastError      string
	ConnectedAt    time.Time
	DisconnectedAt time.Time
}

// ErrNotConnected is returned by Send without a live connection.
var ErrNotConnected = errors.New("not connected")

type subscription struct {
	id uint64
	fn func(Event)
}

// Client is a reconnecting websocket client. Handlers run on the read
// goroutine in arrival order.
type Client struct {
	cfg    Config
	dialer *websocket.Dialer
	state  atomic.Int32

	mu     sync.Mutex
	conn   *websocket.Conn
	token  string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	writeMu sync.Mutex

	subsMu sync.RWMutex
	subs   map[EventType][]subscription
	nextID uint64

	statsMu sync.Mutex
	stats   Stats
}

// NewClient creates a disconnected client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.ConnectTimeout},
		subs:   make(map[EventType][]subscription),
	}
}

// Connect dials the server and starts reading. The connection and its
// reconnects live until ctx is done or Close is called.
func (c *Client) Connect(ctx context.Context, token string) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	c.token = token
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	runCtx := c.ctx
	c.mu.Unlock()

	c.setState(StateConnecting)
	conn, err := c.dial(runCtx)
	if err != nil {
		c.setState(StateError)
		c.recordError(err)
		c.mu.Lock()
		c.cancel()
		c.cancel = nil
		close(c.done)
		c.mu.Unlock()
		return err
	}
	c.attach(conn)

	go c.run(runCtx)
	logger.Debug("Realtime connected", "url", c.cfg.URL)
	return nil
}

// Close stops the client and waits for its goroutine to exit.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, done, conn := c.cancel, c.done, c.conn
	c.cancel = nil
	c.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		conn.Close()
	}
	<-done

	c.setState(StateDisconnected)
	c.recordDisconnected()
	logger.Debug("Realtime disconnected")
	return nil
}

// Done is closed when the client stops for good: Close, context end or
// exhausted reconnect attempts.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// On subscribes fn to events of type t. EventAny receives every event. The
// returned func unsubscribes.
func (c *Client) On(t EventType, fn func(Event)) func() {
	c.subsMu.Lock()
	c.nextID++
	id := c.nextID
	c.subs[t] = append(c.subs[t], subscription{id: id, fn: fn})
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		list := c.subs[t]
		for i, s := range list {
			if s.id == id {
				c.subs[t] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Send writes one frame.
func (c *Client) Send(t EventType, payload any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(Event{Type: t, Payload: payload})
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		return err
	}
	c.statsMu.Lock()
	c.stats.EventsSent++
	c.statsMu.Unlock()
	return nil
}

// State returns the connection state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Stats returns connection statistics
func (c *Client) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	target, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}
	conn, _, err := c.dialer.DialContext(ctx, target, nil)
	return conn, err
}

func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.setState(StateConnected)
	c.statsMu.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsMu.Unlock()
}

func (c *Client) detach() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
	c.recordDisconnected()
}

// run reads until the connection drops, then reconnects.
func (c *Client) run(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		close(c.done)
		c.mu.Unlock()
	}()

	for {
		hbCtx, stopHeartbeat := context.WithCancel(ctx)
		go c.heartbeat(hbCtx)
		err := c.readLoop()
		stopHeartbeat()
		c.detach()

		if ctx.Err() != nil {
			return
		}
		c.recordError(err)
		logger.Warn("Realtime connection lost", "error", err)

		if !c.reconnect(ctx) {
			return
		}
	}
}

func (c *Client) readLoop() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Debug("Dropping malformed realtime frame", "error", err)
			continue
		}
		c.statsMu.Lock()
		c.stats.EventsReceived++
		c.statsMu.Unlock()
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev Event) {
	c.subsMu.RLock()
	handlers := append([]subscription(nil), c.subs[ev.Type]...)
	if ev.Type != EventAny {
		handlers = append(handlers, c.subs[EventAny]...)
	}
	c.subsMu.RUnlock()

	for _, s := range handlers {
		s.fn(ev)
	}
}

func (c *Client) heartbeat(ctx context.Context) {
	if c.cfg.HeartbeatInterval <= 0 {
		return
	}
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Send(EventHeartbeat, nil); err != nil {
				logger.Debug("Failed to send heartbeat", "error", err)
			}
		}
	}
}

// reconnect retries with exponential backoff. It reports whether a new
// connection is attached.
func (c *Client) reconnect(ctx context.Context) bool {
	c.setState(StateReconnecting)
	for attempt := 0; c.cfg.MaxReconnectAttempts < 0 || attempt < c.cfg.MaxReconnectAttempts; attempt++ {
		wait := Backoff(attempt, c.cfg.ReconnectBaseDelay, c.cfg.ReconnectMaxDelay)
		if c.cfg.ReconnectJitter > 0 {
			wait += rand.N(c.cfg.ReconnectJitter)
		}
		logger.Debug("Reconnecting realtime", "attempt", attempt+1, "wait", wait)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}

		conn, err := c.dial(ctx)
		if err != nil {
			c.recordError(err)
			continue
		}
		c.attach(conn)
		c.statsMu.Lock()
		c.stats.ReconnectCount++
		c.statsMu.Unlock()
		logger.Debug("Realtime reconnected")
		return true
	}

	c.setState(StateError)
	logger.Error("Max reconnection attempts reached", "attempts", c.cfg.MaxReconnectAttempts)
	return false
}

// Backoff is the delay before reconnect attempt n (from zero): base doubled
// n times, capped at max.
func Backoff(n int, base, max time.Duration) time.Duration {
	d := base
	for i := 0; i < n && d < max; i++ {
		d *= 2
	}
	if max > 0 && d > max {
		d = max
	}
	return d
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
}

func (c *Client) recordError(err error) {
	if err == nil {
		return
	}
	c.statsMu.Lock()
	c.stats.LastError = err.Error()
	c.statsMu.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsMu.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsMu.Unlock()
}
