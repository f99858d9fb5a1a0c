package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/util"
)

// Message types pushed to websocket sessions.
const (
	MessageHello    = "hello"
	MessageState    = "state"
	MessageLocation = "location"
)

// Message is one frame sent to a websocket session.
type Message struct {
	Type    string               `json:"type"`
	Session string               `json:"session,omitempty"`
	State   *dashboard.ViewState `json:"state,omitempty"`
	Country *string              `json:"country,omitempty"`
}

func StateMessage(state dashboard.ViewState) Message {
	return Message{Type: MessageState, State: &state}
}

func LocationMessage(country string) Message {
	return Message{Type: MessageLocation, Country: &country}
}

type session struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Hub fans dashboard updates out to every connected websocket session. A
// session that cannot keep up is disconnected rather than blocking the others.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	closed   bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: util.OrNop(logger),
	}
}

// Serve upgrades the request and registers a session. The initial messages are
// queued before the session receives broadcasts.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, initial ...Message) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, constants.WebSocketConfig.SendBuffer+len(initial)+1),
		done: make(chan struct{}),
	}

	hello := Message{Type: MessageHello, Session: s.id}
	for _, msg := range append([]Message{hello}, initial...) {
		data, err := json.Marshal(msg)
		if err != nil {
			s.close()
			return err
		}
		s.send <- data
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		s.close()
		return nil
	}
	h.sessions[s.id] = s
	count := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("WebSocket session opened", zap.String("session", s.id), zap.Int("sessions", count))

	go h.writeLoop(s)
	go h.readLoop(s)
	return nil
}

// Broadcast sends msg to every session without blocking.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to encode websocket message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	var slow []*session
	for _, s := range h.sessions {
		select {
		case s.send <- data:
		case <-s.done:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.logger.Warn("Dropping slow websocket session", zap.String("session", s.id))
		h.remove(s)
	}
}

func (h *Hub) BroadcastState(state dashboard.ViewState) {
	h.Broadcast(StateMessage(state))
}

func (h *Hub) BroadcastLocation(country string) {
	h.Broadcast(LocationMessage(country))
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close disconnects every session and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := h.sessions
	h.sessions = make(map[string]*session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	_, ok := h.sessions[s.id]
	delete(h.sessions, s.id)
	h.mu.Unlock()

	s.close()
	if ok {
		h.logger.Info("WebSocket session closed", zap.String("session", s.id))
	}
}

func (h *Hub) writeLoop(s *session) {
	ticker := time.NewTicker(constants.WebSocketConfig.PingInterval)
	defer ticker.Stop()
	defer h.remove(s)

	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("WebSocket write failed", zap.String("session", s.id), zap.Error(err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(constants.WebSocketConfig.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// readLoop only watches for the peer going away; clients never send commands
// over the socket.
func (h *Hub) readLoop(s *session) {
	defer h.remove(s)

	s.conn.SetReadLimit(4096)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.String("session", s.id), zap.Error(err))
			}
			return
		}
	}
}
