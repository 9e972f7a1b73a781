package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// conn tem uma fila própria e um único writer; quem faz Broadcast nunca bloqueia
type conn struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{ws: ws, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
}

// enqueue devolve false se a fila está cheia ou a conexão já foi fechada
func (c *conn) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *conn) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writeLoop é o único goroutine que escreve na conexão
func (c *conn) writeLoop(log *zap.Logger) {
	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Debug("ws write failed", zap.Error(err))
				c.close()
				return
			}
		}
	}
}

// Hub gerencia conexões WebSocket e assinaturas por liga
// subs: mapeia liga para o conjunto de conexões inscritas
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	mu       sync.RWMutex
	subs     map[string]map[*conn]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		subs:     make(map[string]map[*conn]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}
	c := newConn(wsConn)
	go c.writeLoop(h.log)
	defer h.drop(c)

	for {
		var msg ClientMsg
		if err := wsConn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.subscribe(c, msg.League)
		case "unsubscribe":
			h.unsubscribe(c, msg.League)
		case "ping":
			c.enqueue([]byte(`{"type":"pong"}`))
		}
	}
}

// drop remove a conexão de todas as assinaturas e a fecha
func (h *Hub) drop(c *conn) {
	h.mu.Lock()
	for league, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, league)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) subscribe(c *conn, league string) {
	if league == "" {
		league = AllLeagues
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[league]; !ok {
		h.subs[league] = make(map[*conn]struct{})
	}
	h.subs[league][c] = struct{}{}
}

func (h *Hub) unsubscribe(c *conn, league string) {
	if league == "" {
		league = AllLeagues
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[league]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, league)
		}
	}
}

// Subscribers conta conexões distintas inscritas em qualquer liga
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := make(map[*conn]struct{})
	for _, set := range h.subs {
		for c := range set {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}

// Broadcast enfileira a atualização para os inscritos na liga e em "*"
// Cada conexão recebe no máximo uma cópia; não bloqueia o chamador
func (h *Hub) Broadcast(update RecordUpdate) {
	h.mu.RLock()
	targets := make(map[*conn]struct{})
	for _, league := range []string{update.League, AllLeagues} {
		for c := range h.subs[league] {
			targets[c] = struct{}{}
		}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, err := json.Marshal(update)
	if err != nil {
		h.log.Warn("ws marshal failed", zap.Error(err))
		return
	}
	// assinante que não consome a fila é desconectado
	for c := range targets {
		if !c.enqueue(b) {
			h.log.Warn("ws subscriber too slow, dropping")
			h.drop(c)
		}
	}
}
