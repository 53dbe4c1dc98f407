package backend

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
)

// Push frame types delivered by the server-push channel.
const (
	PushTypeUpdate    = "update"
	PushTypeHeartbeat = "heartbeat"
)

// PushEvent is one frame from the push channel. Update frames carry a
// partial field set applied last-write-wins; heartbeats are liveness only.
type PushEvent struct {
	Type string                     `json:"type"`
	Data map[string]json.RawMessage `json:"data,omitempty"`
}

// Subscription is a live push channel for one identity. Events closes when
// the transport fails or Close is called; the owner reconnects with a fresh
// Subscribe after its fixed delay.
type Subscription struct {
	conn   *websocket.Conn
	events chan PushEvent
	err    error
	done   chan struct{}
}

// Subscribe opens the push channel for an identity. The origin token ties
// the subscription to this client's uploads so their broadcasts skip it.
func (c *Client) Subscribe(ctx context.Context, id string) (*Subscription, error) {
	url := wsURL(c.baseURL) + "/api/ws/" + id + "?origin=" + c.origin

	conn, res, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if res != nil && res.Body != nil {
		res.Body.Close()
	}

	sub := &Subscription{
		conn:   conn,
		events: make(chan PushEvent, 16),
		done:   make(chan struct{}),
	}
	go sub.readLoop()
	return sub, nil
}

func (s *Subscription) readLoop() {
	defer close(s.events)
	for {
		var ev PushEvent
		if err := s.conn.ReadJSON(&ev); err != nil {
			select {
			case <-s.done:
				// Closed by the owner; not a transport failure.
			default:
				s.err = err
			}
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Events streams frames until the channel closes.
func (s *Subscription) Events() <-chan PushEvent { return s.events }

// Err reports the transport error that ended the stream, if any.
func (s *Subscription) Err() error { return s.err }

// Close tears the channel down. Safe to call more than once.
func (s *Subscription) Close() error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}
	return s.conn.Close()
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
