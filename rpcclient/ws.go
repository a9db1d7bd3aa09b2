package rpcclient

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Subscription forwards server-sent frames for a latc_subscribe channel
// opaquely — the core does not interpret them (§6).
type Subscription struct {
	conn     *websocket.Conn
	Messages chan []byte
	Errors   chan error
	done     chan struct{}
}

// subscribeRequest is the JSON-RPC request sent once over the WebSocket to
// start a subscription.
type subscribeRequest struct {
	ID      int      `json:"id"`
	JSONRPC string   `json:"jsonrpc"`
	Method  string   `json:"method"`
	Params  []string `json:"params"`
}

// SubscribeWS connects to wsEndpoint and subscribes to channel, which must
// be one of "monitorData", "newTBlock", or "newDBlock" (§6).
func SubscribeWS(wsEndpoint string, channel string) (*Subscription, error) {
	switch channel {
	case "monitorData", "newTBlock", "newDBlock":
	default:
		return nil, fmt.Errorf("rpcclient: unknown subscribe channel %q", channel)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint, nil)
	if err != nil {
		return nil, err
	}

	req := subscribeRequest{ID: 1, JSONRPC: "2.0", Method: "latc_subscribe", Params: []string{channel}}
	if err := conn.WriteJSON(req); err != nil {
		conn.Close()
		return nil, err
	}

	sub := &Subscription{
		conn:     conn,
		Messages: make(chan []byte, 16),
		Errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	go sub.readLoop()
	return sub, nil
}

func (s *Subscription) readLoop() {
	defer close(s.Messages)
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case s.Errors <- err:
			default:
			}
			return
		}
		select {
		case s.Messages <- msg:
		case <-s.done:
			return
		}
	}
}

// Close stops the read loop and closes the underlying connection.
func (s *Subscription) Close() error {
	close(s.done)
	return s.conn.Close()
}
