package model

import (
	"sync"

	"github.com/benbeisheim/cooldownchess-backend/internal/ws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the write side of a subscriber's websocket.
type Conn interface {
	WriteJSON(v any) error
}

// Client is one websocket subscriber. Writes are serialized because the
// connection allows a single concurrent writer.
type Client struct {
	ID   string
	conn Conn
	mu   sync.Mutex

	// last is the newest snapshot version written to this client.
	last uint64
	sent bool
}

func (c *Client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// writeState sends a snapshot unless the client already has the same or a
// newer version. Pushes run on their own goroutines, so a stale one can lose
// the race to a newer one and is dropped here.
func (c *Client) writeState(version uint64, msg ws.Message) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sent && version <= c.last {
		return false, nil
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return false, err
	}
	c.last, c.sent = version, true
	return true, nil
}

// The connections for a specific game
type GameConnections struct {
	clients map[string]*Client // clientID -> client
	mu      sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		clients: make(map[string]*Client),
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.clients)
}

// RegisterConnection subscribes conn to this game's snapshots and sends it
// the current board.
func (g *Game) RegisterConnection(conn Conn) *Client {
	client := &Client{ID: uuid.NewString(), conn: conn}

	g.connections.mu.Lock()
	g.connections.clients[client.ID] = client
	g.connections.mu.Unlock()
	g.logger.Debug("registered connection",
		zap.String("client_id", client.ID),
		zap.Int("subscribers", g.connections.Len()),
	)

	snap := g.Snapshot()
	msg, err := ws.NewMessage(ws.MessageTypeGameState, snap)
	if err != nil {
		g.logger.Error("failed to marshal snapshot", zap.Error(err))
		return client
	}
	if _, err := client.writeState(snap.Version, msg); err != nil {
		g.logger.Warn("failed to send state", zap.String("client_id", client.ID), zap.Error(err))
	}
	return client
}

func (g *Game) UnregisterConnection(clientID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.clients[clientID]; exists {
		delete(g.connections.clients, clientID)
		g.logger.Debug("unregistered connection", zap.String("client_id", clientID))
	}
}

// broadcastState pushes snap to every subscriber. Clients that already saw a
// newer version skip it; clients that fail a write are dropped.
func (g *Game) broadcastState(t ws.MessageType, snap BoardSnapshot) {
	if g.connections.Len() == 0 {
		return
	}
	g.connections.mu.RLock()
	active := make([]*Client, 0, len(g.connections.clients))
	for _, client := range g.connections.clients {
		active = append(active, client)
	}
	g.connections.mu.RUnlock()

	msg, err := ws.NewMessage(t, snap)
	if err != nil {
		g.logger.Error("failed to marshal snapshot", zap.Error(err))
		return
	}
	for _, client := range active {
		sent, err := client.writeState(snap.Version, msg)
		if err != nil {
			g.logger.Warn("failed to send state", zap.String("client_id", client.ID), zap.Error(err))
			g.UnregisterConnection(client.ID)
			continue
		}
		if !sent {
			g.logger.Debug("dropped stale state",
				zap.String("client_id", client.ID),
				zap.Uint64("version", snap.Version),
			)
		}
	}
}
