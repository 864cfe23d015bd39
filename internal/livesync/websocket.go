package livesync

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/glare-project/glare/pkg/errclass"
)

// WebSocketTransport dials the console's snapshot-ws endpoint.
type WebSocketTransport struct {
	dialer *websocket.Dialer
	header http.Header
}

// NewWebSocketTransport returns a transport presenting the given bearer
// token on the handshake. token may be empty.
func NewWebSocketTransport(token string) *WebSocketTransport {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return &WebSocketTransport{
		dialer: websocket.DefaultDialer,
		header: header,
	}
}

// Dial implements Transport.
func (t *WebSocketTransport) Dial(ctx context.Context, url string) (Stream, error) {
	conn, resp, err := t.dialer.DialContext(ctx, url, t.header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, errclass.ErrTransport.WithMessagef("dial stream %s: %v", url, err)
	}
	return &wsStream{conn: conn}, nil
}

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) Read() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}
