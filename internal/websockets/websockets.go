package websockets

import (
	"context"
	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/events"
	"roaddogs/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// BroadcastChannel carries application lifecycle events to connected review
// consoles.
const BroadcastChannel = "broadcast"

// Manager relays bus events to every connected review-console websocket.
type Manager struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	bus    *events.EventBus
	log    logger.Logger
	cancel context.CancelFunc
}

func New(db database.DB, bus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		conns: make(map[*websocket.Conn]struct{}),
		bus:   bus,
		log:   logger.New("websockets"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go func() {
		if err := bus.Subscribe(ctx, BroadcastChannel, m.broadcast); err != nil {
			m.log.Function("subscribe").Er("event subscription stopped", err)
		}
	}()

	return m, nil
}

// HandleWebSocket owns the connection for its lifetime: register, drain
// client frames, unregister on close.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	m.register(c)
	defer m.unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) register(c *websocket.Conn) {
	m.mu.Lock()
	m.conns[c] = struct{}{}
	m.mu.Unlock()
}

func (m *Manager) unregister(c *websocket.Conn) {
	m.mu.Lock()
	delete(m.conns, c)
	m.mu.Unlock()
	_ = c.Close()
}

func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Er("failed to write event to websocket", err, "eventType", event.Type)
			delete(m.conns, conn)
			_ = conn.Close()
		}
	}
}

func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.conns {
		_ = conn.Close()
	}
	m.conns = make(map[*websocket.Conn]struct{})
}
