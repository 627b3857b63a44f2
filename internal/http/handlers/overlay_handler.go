package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/streamtips/backend/internal/events"
	"go.uber.org/zap"
)

// OverlayHub pushes accepted-donation popups to the overlay pages connected
// for each streamer.
type OverlayHub struct {
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn // keyed by streamer id
}

func NewOverlayHub(subscriber events.Subscriber, log *zap.Logger) *OverlayHub {
	return &OverlayHub{
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *OverlayHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.StreamDonations, func(event events.Event) {
		streamerID, _ := event.Payload["streamer_id"].(string)
		if streamerID == "" {
			return
		}
		h.sendToStreamer(streamerID, event)
	})
}

func (h *OverlayHub) sendToStreamer(streamerID string, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[streamerID] {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// HandleWS registers an overlay connection for the streamer in the path.
// GET /ws/overlay/:streamerId
func (h *OverlayHub) HandleWS(conn *websocket.Conn) {
	streamerID := conn.Params("streamerId")
	if streamerID == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing streamer id"}`))
		conn.Close()
		return
	}

	h.mu.Lock()
	h.connections[streamerID] = append(h.connections[streamerID], conn)
	h.mu.Unlock()

	h.log.Debug("overlay connected", zap.String("streamer_id", streamerID))

	defer func() {
		h.mu.Lock()
		conns := h.connections[streamerID]
		for i, c := range conns {
			if c == conn {
				h.connections[streamerID] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[streamerID]) == 0 {
			delete(h.connections, streamerID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
