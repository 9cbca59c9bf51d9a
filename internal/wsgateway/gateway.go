// Package wsgateway upgrades HTTP connections to websockets and pumps
// realtime broker events to subscribed clients. Grounded on
// gateway.Gateway/gateway.Connection: the same permissive-origin
// upgrade, readPump/writePump goroutine pair, and ping/pong keepalive,
// generalized from the teacher's binary protobuf frames to this
// runtime's JSON text frames.
package wsgateway

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"funeuchre/internal/broker"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TokenVerifier resolves a query-string reconnect token into a session
// and player id, or reports failure.
type TokenVerifier func(token string) (sessionId, playerId string, ok bool)

type Gateway struct {
	Broker *broker.Broker
	Verify TokenVerifier

	// OnConnect and OnDisconnect, if set, are called with a session's id
	// whenever its websocket comes up or drops — wired by the runtime to
	// clear/arm that session's reconnect deadline for the Lifecycle
	// Sweeper's forfeit resolver.
	OnConnect    func(sessionId string)
	OnDisconnect func(sessionId string)
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionId, playerId, ok := g.Verify(r.URL.Query().Get("token"))
	if !ok {
		http.Error(w, "invalid or expired reconnect token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[wsgateway] upgrade failed: %v", err)
		return
	}

	c := &Connection{
		ws:           conn,
		send:         make(chan []byte, 32),
		sessionId:    sessionId,
		playerId:     playerId,
		broker:       g.Broker,
		onDisconnect: g.OnDisconnect,
	}
	g.Broker.ConnectSession(sessionId, c)
	if g.OnConnect != nil {
		g.OnConnect(sessionId)
	}

	go c.writePump()
	go c.readPump()

	c.sendEnvelope("ws.ready", map[string]string{"sessionId": sessionId, "playerId": playerId})
}

// Connection is one live websocket, implementing broker.Sink so the
// broker can deliver frames without knowing about websockets.
type Connection struct {
	ws           *websocket.Conn
	send         chan []byte
	sessionId    string
	playerId     string
	broker       *broker.Broker
	onDisconnect func(sessionId string)
}

func (c *Connection) Send(frame []byte) error {
	select {
	case c.send <- frame:
		return nil
	default:
		return nil // slow consumer: drop rather than block the broker
	}
}

type subscribeRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

func (c *Connection) readPump() {
	defer func() {
		c.broker.DisconnectSession(c.sessionId)
		if c.onDisconnect != nil {
			c.onDisconnect(c.sessionId)
		}
		c.ws.Close()
		close(c.send)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var req subscribeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.sendEnvelope("ws.error", map[string]string{"message": "malformed frame"})
			continue
		}
		switch req.Type {
		case "subscribe":
			c.broker.JoinRoom(c.sessionId, req.Room)
			c.sendEnvelope("ws.subscribed", map[string]string{"room": req.Room})
		case "unsubscribe":
			c.broker.LeaveRoom(c.sessionId, req.Room)
		default:
			c.sendEnvelope("ws.error", map[string]string{"message": "unrecognized message type"})
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) sendEnvelope(eventType string, data any) {
	frame, err := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{Type: eventType, Data: data})
	if err != nil {
		return
	}
	_ = c.Send(frame)
}
