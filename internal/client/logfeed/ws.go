package logfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

// Envelope is one log event from the indexer feed. Payload carries the
// event-specific fields.
type Envelope struct {
	EventType   string          `json:"eventType"`
	UniverseID  string          `json:"universe"`
	BlockNumber uint64          `json:"blockNumber"`
	LogIndex    uint64          `json:"logIndex"`
	Timestamp   int64           `json:"timestamp"`
	Payload     json.RawMessage `json:"payload"`
}

type WSClient struct {
	url  string
	conn *websocket.Conn
}

func NewWSClient(url string) *WSClient {
	return &WSClient{url: url}
}

func (c *WSClient) Connect(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("ws client is nil")
	}
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return err
	}
	// Finalization events carry full payout vectors; raise the read limit.
	conn.SetReadLimit(1 << 20)
	c.conn = conn
	return nil
}

func (c *WSClient) Close(status websocket.StatusCode, reason string) error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close(status, reason)
}

// Subscribe asks the feed for all log event types of one universe.
func (c *WSClient) Subscribe(ctx context.Context, universeID string) error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("ws not connected")
	}
	req := struct {
		Type     string `json:"type"`
		Universe string `json:"universe,omitempty"`
	}{Type: "logs", Universe: universeID}
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, payload)
}

func (c *WSClient) Read(ctx context.Context) (Envelope, []byte, error) {
	if c == nil || c.conn == nil {
		return Envelope{}, nil, fmt.Errorf("ws not connected")
	}
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return Envelope{}, nil, err
	}
	var env Envelope
	_ = json.Unmarshal(data, &env)
	return env, data, nil
}

// StreamOptions configure the reconnecting log stream.
type StreamOptions struct {
	URL        string
	UniverseID string
	BackoffMin time.Duration
	BackoffMax time.Duration
	Logger     *zap.Logger
}

type Stream struct {
	opts StreamOptions
}

func NewStream(opts StreamOptions) *Stream {
	if opts.BackoffMin == 0 {
		opts.BackoffMin = 1 * time.Second
	}
	if opts.BackoffMax == 0 {
		opts.BackoffMax = 30 * time.Second
	}
	return &Stream{opts: opts}
}

// Run connects, subscribes and dispatches envelopes until ctx is canceled,
// reconnecting with jittered backoff on any failure.
func (s *Stream) Run(ctx context.Context, onEvent func(Envelope)) error {
	if s == nil {
		return fmt.Errorf("stream is nil")
	}
	backoff := s.opts.BackoffMin
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		client := NewWSClient(s.opts.URL)
		if err := client.Connect(ctx); err != nil {
			if s.opts.Logger != nil {
				s.opts.Logger.Warn("log feed connect failed", zap.Error(err))
			}
			if err := sleepWithJitter(ctx, backoff); err != nil {
				return err
			}
			backoff = nextBackoff(backoff, s.opts.BackoffMax)
			continue
		}
		if s.opts.Logger != nil {
			s.opts.Logger.Info("log feed connected", zap.String("url", s.opts.URL))
		}
		err := s.consume(ctx, client, onEvent)
		_ = client.Close(websocket.StatusNormalClosure, "reconnect")
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		if s.opts.Logger != nil {
			s.opts.Logger.Warn("log feed disconnected", zap.Error(err))
		}
		if err := sleepWithJitter(ctx, backoff); err != nil {
			return err
		}
		backoff = nextBackoff(backoff, s.opts.BackoffMax)
	}
}

func (s *Stream) consume(ctx context.Context, client *WSClient, onEvent func(Envelope)) error {
	if err := client.Subscribe(ctx, s.opts.UniverseID); err != nil {
		return err
	}
	for {
		env, _, err := client.Read(ctx)
		if err != nil {
			return err
		}
		if env.EventType == "" {
			continue
		}
		onEvent(env)
	}
}

func sleepWithJitter(ctx context.Context, d time.Duration) error {
	jitter := time.Duration(rand.Int63n(int64(d)/2 + 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d + jitter):
		return nil
	}
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		next = max
	}
	return next
}
