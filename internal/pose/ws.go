package pose

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// estimateRequest asks the sidecar to run inference on its current frame.
type estimateRequest struct {
	Op  string `json:"op"`
	Seq uint64 `json:"seq"`
}

// estimateResponse carries the detections for one request.
type estimateResponse struct {
	Seq   uint64 `json:"seq"`
	Poses []Pose `json:"poses"`
	Error string `json:"error,omitempty"`
}

// WSBackend talks to a pose-estimation sidecar over a websocket.
// The sidecar owns the camera; every Estimate is a request/response pair
// matched by sequence number.
type WSBackend struct {
	url    string
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
	seq  uint64
}

// NewWSBackend creates a backend for the given ws:// or wss:// URL.
func NewWSBackend(url string) *WSBackend {
	return &WSBackend{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  1024,
		},
	}
}

// Boot dials the sidecar. Calling it on a booted backend is a no-op.
func (b *WSBackend) Boot(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		return nil
	}
	conn, _, err := b.dialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return fmt.Errorf("pose: dial %s: %w", b.url, err)
	}
	b.conn = conn
	return nil
}

// Ready reports whether a connection is established.
func (b *WSBackend) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// Estimate sends one request and waits for the matching reply.
// Cancelling ctx unblocks the read; any transport error drops the
// connection so the next Boot dials again.
func (b *WSBackend) Estimate(ctx context.Context) ([]Pose, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil, ErrNotBooted
	}

	b.seq++
	req := estimateRequest{Op: "estimate", Seq: b.seq}

	if deadline, ok := ctx.Deadline(); ok {
		//nolint:errcheck // Deadline errors surface on the next read/write
		b.conn.SetWriteDeadline(deadline)
		//nolint:errcheck
		b.conn.SetReadDeadline(deadline)
	} else {
		//nolint:errcheck
		b.conn.SetWriteDeadline(time.Time{})
		//nolint:errcheck
		b.conn.SetReadDeadline(time.Time{})
	}

	conn := b.conn
	stop := context.AfterFunc(ctx, func() {
		//nolint:errcheck // Forces the blocked read below to return
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := conn.WriteJSON(req); err != nil {
		b.dropLocked()
		return nil, transportErr(ctx, "send", err)
	}

	var resp estimateResponse
	if err := conn.ReadJSON(&resp); err != nil {
		b.dropLocked()
		return nil, transportErr(ctx, "receive", err)
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("pose: sidecar error: %s", resp.Error)
	}
	if resp.Seq != req.Seq {
		b.dropLocked()
		return nil, fmt.Errorf("pose: out-of-order reply: got seq %d, expected %d", resp.Seq, req.Seq)
	}
	return resp.Poses, nil
}

func transportErr(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("pose: %s: %w", op, ctxErr)
	}
	return fmt.Errorf("pose: %s: %w", op, err)
}

// dropLocked closes and forgets the connection. Caller holds b.mu.
func (b *WSBackend) dropLocked() {
	if b.conn != nil {
		//nolint:errcheck // Connection is already broken
		b.conn.Close()
		b.conn = nil
	}
}

// Close shuts the connection down gracefully.
func (b *WSBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil
	}
	//nolint:errcheck // Best-effort close handshake
	b.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	err := b.conn.Close()
	b.conn = nil
	return err
}
