package system

import (
	"github.com/gofiber/contrib/websocket"
)

type WebSocketController struct {
	Hub *Hub
}

func NewWebSocketController(hub *Hub) *WebSocketController {
	return &WebSocketController{Hub: hub}
}

// HandleWebSocket keeps the connection registered with the hub until the
// client goes away. Incoming messages are ignored, the socket is a
// one-way change feed.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	h.Hub.register(c)
	defer h.Hub.unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
