package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"
)

// Socket carries the line protocol over a websocket. Every text frame holds
// one or more lines; writes go out as one frame each.
type Socket struct {
	conn *websocket.Conn
	buf  bytes.Buffer
}

const handshakeTimeout = 10 * time.Second

// DialSocket connects to url. The context bounds the handshake only.
func DialSocket(ctx context.Context, url string) (*Socket, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &Socket{conn: conn}, nil
}

// Read implements io.Reader over incoming frames. A normal close reads as io.EOF.
func (s *Socket) Read(p []byte) (int, error) {
	for s.buf.Len() == 0 {
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("read error: %w", err)
		}
		if kind != websocket.TextMessage {
			continue
		}
		s.buf.Write(msg)
		if len(msg) > 0 && msg[len(msg)-1] != '\n' {
			s.buf.WriteByte('\n')
		}
	}
	return s.buf.Read(p)
}

// Write sends p as one text frame, trailing newline stripped.
func (s *Socket) Write(p []byte) (int, error) {
	msg := bytes.TrimRight(p, "\n")
	if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return 0, fmt.Errorf("write error: %w", err)
	}
	return len(p), nil
}

// Close sends a close frame and releases the connection.
func (s *Socket) Close() error {
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}
