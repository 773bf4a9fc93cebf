package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
)

const writeTimeout = 5 * time.Second

// statusMsg is the per-frame status pushed to viewers as a text message,
// alongside the binary frame itself.
type statusMsg struct {
	Type     string  `json:"type"`
	Frame    uint64  `json:"frame"`
	Busy     bool    `json:"busy"`
	CenterRe float64 `json:"centerRe"`
	CenterIm float64 `json:"centerIm"`
	Scale    float64 `json:"scale"`
	MaxIter  uint8   `json:"maxIter"`
	Palette  string  `json:"palette"`
}

// wsMsg is one outbound websocket message.
type wsMsg struct {
	typ  websocket.MessageType
	data []byte
}

// client is one connected viewer. Outbound messages go through a small
// buffered channel; a viewer that cannot keep up skips frames instead of
// stalling the broadcast.
type client struct {
	conn *websocket.Conn
	out  chan wsMsg
}

func (c *client) push(m wsMsg) {
	select {
	case c.out <- m:
	default:
	}
}

// hub fans completed frames out to every connected viewer and replays the
// latest frame to newcomers.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []wsMsg
	seq     uint64
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

// broadcast pushes a frame and its status to all viewers and remembers them
// for clients that connect later. Returns the frame sequence number.
func (h *hub) broadcast(frame []byte, status statusMsg) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	status.Frame = h.seq

	statusJSON, err := sonic.Marshal(status)
	if err != nil {
		log.Printf("marshal status: %v", err)
		statusJSON = nil
	}

	h.latest = h.latest[:0]
	h.latest = append(h.latest, wsMsg{typ: websocket.MessageBinary, data: frame})
	if statusJSON != nil {
		h.latest = append(h.latest, wsMsg{typ: websocket.MessageText, data: statusJSON})
	}
	for c := range h.clients {
		for _, m := range h.latest {
			c.push(m)
		}
	}
	return h.seq
}

// serve owns one viewer connection: registers it, replays the latest frame,
// pumps outbound messages, and feeds inbound control messages to the
// controller until the connection drops.
func (h *hub) serve(ctx context.Context, conn *websocket.Conn, ctrl *controller) {
	c := &client{conn: conn, out: make(chan wsMsg, 4)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	for _, m := range h.latest {
		c.push(m)
	}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("viewer connected (%d total)", n)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-c.out:
				wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
				err := conn.Write(wctx, m.typ, m.data)
				wcancel()
				if err != nil {
					cancel()
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var msg controlMsg
		if err := sonic.Unmarshal(data, &msg); err != nil {
			log.Printf("bad control message %q: %v", data, err)
			continue
		}
		ctrl.handle(msg)
	}

	h.mu.Lock()
	delete(h.clients, c)
	n = len(h.clients)
	h.mu.Unlock()
	log.Printf("viewer disconnected (%d total)", n)
	conn.CloseNow()
}
