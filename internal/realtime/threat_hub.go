package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope: формат сообщений ленты {"event": "...", "data": ...}
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub: все подписчики /ws/threats
type Hub struct {
	mu       sync.RWMutex
	conns    map[*Conn]struct{}
	upgrader *websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		conns:    make(map[*Conn]struct{}),
		upgrader: NewUpgrader(allowedOrigins),
	}
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		c.close()
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast рассылает событие всем; клиент с переполненным буфером отключается
func (h *Hub) Broadcast(event string, data any) error {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}

	var slow []*Conn
	h.mu.RLock()
	for c := range h.conns {
		if !c.enqueue(msg) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("[ws][threats] drop slow client")
		h.Unregister(c)
	}
	return nil
}

// Serve: апгрейд HTTP-запроса и запуск read/write циклов
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newConn(ws)
	h.Register(c)
	log.Printf("[ws][threats] client connected, total=%d", h.Count())

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// Close отключает всех клиентов (shutdown)
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		delete(h.conns, c)
		c.close()
	}
}
