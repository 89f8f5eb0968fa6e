package system

import (
	"encoding/json"
	"sync"

	"go-transformer/internal/features/rules"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans change events out to every connected websocket client so an
// open rules or schema page can refresh without polling.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// NotifyRulesChanged implements rules.Notifier.
func (h *Hub) NotifyRulesChanged(changes []rules.RuleChange) {
	h.broadcast(map[string]interface{}{
		"type":    "rules_changed",
		"changes": changes,
	})
}

// NotifySchemaChanged implements schema.Notifier.
func (h *Hub) NotifySchemaChanged() {
	h.broadcast(map[string]interface{}{
		"type": "schema_changed",
	})
}

func (h *Hub) broadcast(event map[string]interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal websocket event",
			zap.String("feature", "system"),
			zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// A dead client is dropped here and again in the read
			// loop, delete is safe to run twice.
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
