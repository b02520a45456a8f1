package presence

import (
	"context"

	"github.com/gorilla/websocket"
)

// WebsocketDialer dials the status hub over a websocket. The gorilla
// dialer handles the handshake; reconnection policy lives in Channel.
type WebsocketDialer struct{}

func (WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}
