package hub

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/config"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/domain"
)

func testConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      time.Second,
		MaxMessageSize: 65536,
	}
}

// newConnFactory returns a function producing server-side WebSocket
// connections backed by real client dials.
func newConnFactory(t *testing.T) func() *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- c
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return func() *websocket.Conn {
		client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		t.Cleanup(func() { client.Close() })

		select {
		case c := <-conns:
			t.Cleanup(func() { c.Close() })
			return c
		case <-time.After(2 * time.Second):
			t.Fatal("no server-side connection")
			return nil
		}
	}
}

func (h *Hub) hasClient(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}

func TestSendToUnknownClientIsNoop(t *testing.T) {
	h := NewHub(testConfig())
	if err := h.SendToClient("ghost", map[string]string{"type": "pong"}); err != nil {
		t.Fatalf("SendToClient to unknown ID: %v", err)
	}
}

func TestSendRacingUnregisterNeverPanics(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()
	factory := newConnFactory(t)

	const nClients = 8
	clients := make([]*Client, nClients)
	for i := range clients {
		id := fmt.Sprintf("conn-%d", i)
		clients[i] = &Client{
			ID:      id,
			Hub:     h,
			Conn:    factory(),
			Send:    make(chan []byte, 4),
			Session: domain.NewSession(id),
		}
		h.Register(clients[i])
	}

	// Hammer every client from several goroutines while unregistering them
	// concurrently. The small Send buffer also forces the slow-client
	// eviction path. Any send on a closed channel would panic here.
	var wg sync.WaitGroup
	for _, c := range clients {
		c := c
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					if err := h.SendToClient(c.ID, map[string]string{"seq": "x"}); err != nil {
						t.Errorf("SendToClient: %v", err)
						return
					}
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Unregister(c)
		}()
	}
	wg.Wait()

	for _, c := range clients {
		if err := h.SendToClient(c.ID, map[string]string{"seq": "y"}); err != nil {
			t.Errorf("SendToClient after unregister: %v", err)
		}
	}
}

func TestSlowClientIsEvicted(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()
	factory := newConnFactory(t)

	c := &Client{
		ID:      "slow",
		Hub:     h,
		Conn:    factory(),
		Send:    make(chan []byte, 1),
		Session: domain.NewSession("slow"),
	}
	h.Register(c)

	// No WritePump draining the buffer, so the second send overflows it.
	h.SendToClient("slow", "a")
	h.SendToClient("slow", "b")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !h.hasClient("slow") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("slow client still registered after buffer overflow")
}
