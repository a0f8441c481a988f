package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionModels "github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	rentalModels "github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	fetchTimeout = 5 * time.Second
)

// RentalFetcher перечитывает аренду по ID
type RentalFetcher interface {
	GetRental(ctx context.Context, id int64) (*rentalModels.RentalResponse, error)
}

// ExtensionFetcher перечитывает продление с арендой и платежом
type ExtensionFetcher interface {
	GetExtension(ctx context.Context, id int64) (*extensionModels.ExtensionResponse, error)
}

// PaymentFetcher перечитывает платёж
type PaymentFetcher interface {
	GetPayment(ctx context.Context, id int64) (*paymentModels.PaymentResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message то, что получает админка
type Message struct {
	Entity realtime.Entity `json:"entity"`
	Action realtime.Action `json:"action"`
	ID     int64           `json:"id"`
	Data   interface{}     `json:"data"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // gorilla разрешает только одного писателя
}

func (c *client) write(fn func(*websocket.Conn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return fn(c.conn)
}

// Hub держит websocket соединения админов и рассылает им изменённые строки
type Hub struct {
	rentals    RentalFetcher
	extensions ExtensionFetcher
	payments   PaymentFetcher
	log        Logger

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub создает hub. allowedOrigins пустой - принимаем любой Origin
func NewHub(rentals RentalFetcher, extensions ExtensionFetcher, payments PaymentFetcher, allowedOrigins []string, log Logger) *Hub {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		rentals:    rentals,
		extensions: extensions,
		payments:   payments,
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				_, ok := origins[r.Header.Get("Origin")]
				return ok
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP GET /api/v1/admin/ws
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WS: upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Info("WS: admin connected from %s, clients=%d", r.RemoteAddr, total)

	go h.pingLoop(c)
	go h.readLoop(c)
}

// Count число подключенных админов
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleEvent обработчик для realtime.Subscriber. Данным из события не доверяем,
// строку всегда перечитываем целиком.
func (h *Hub) HandleEvent(ctx context.Context, ev realtime.Event) {
	if h.Count() == 0 {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	data, err := h.fetch(fetchCtx, ev)
	if err != nil {
		h.log.Warn("WS: failed to reload %s id=%d: %v", ev.Entity, ev.ID, err)
		return
	}

	h.log.Debug("WS: broadcasting %s %s id=%d", ev.Entity, ev.Action, ev.ID)
	h.Broadcast(Message{Entity: ev.Entity, Action: ev.Action, ID: ev.ID, Data: data})
}

func (h *Hub) fetch(ctx context.Context, ev realtime.Event) (interface{}, error) {
	switch ev.Entity {
	case realtime.EntityRental:
		return h.rentals.GetRental(ctx, ev.ID)
	case realtime.EntityExtension:
		return h.extensions.GetExtension(ctx, ev.ID)
	case realtime.EntityPayment:
		return h.payments.GetPayment(ctx, ev.ID)
	default:
		return nil, realtime.ErrInvalidEvent
	}
}

// Broadcast отправляет сообщение всем админам, сломанные соединения закрываются
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("WS: failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		err := c.write(func(conn *websocket.Conn) error {
			return conn.WriteMessage(websocket.TextMessage, payload)
		})
		if err != nil {
			h.log.Warn("WS: write failed, dropping client: %v", err)
			h.remove(c)
		}
	}
}

// Close закрывает все соединения при остановке сервера
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		_ = c.write(func(conn *websocket.Conn) error {
			return conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"))
		})
		_ = c.conn.Close()
	}
}

func (h *Hub) pingLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if !h.has(c) {
			return
		}
		err := c.write(func(conn *websocket.Conn) error {
			return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
		if err != nil {
			h.remove(c)
			return
		}
	}
}

// readLoop только держит дедлайны по pong; входящие сообщения админки игнорируются
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(4 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Hub) has(c *client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[c]
	return ok
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		h.log.Info("WS: admin disconnected, clients=%d", total)
	}
}
