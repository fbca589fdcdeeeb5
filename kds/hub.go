package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-manager/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans committed order, payment and table changes out to every
// connected screen (kitchen, floor, cashier).
type Hub struct {
	clients map[*websocket.Conn]string // conn -> view
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, view string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = view
	utils.InfoLogger.Infof("KDS client registered (view=%s, clients=%d)", view, len(h.clients))
}

// Unregister drops the connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish broadcasts an event to every client. Clients that fail a write are
// dropped.
func (h *Hub) Publish(event string, data interface{}) {
	h.broadcast(Message{Event: event, Data: data})
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, view := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to %s client: %v", msg.Event, view, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d clients", msg.Event, len(h.clients))
}
