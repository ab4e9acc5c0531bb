package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/logger"
	"github.com/ocenagor/admin-backend/internal/models"
)

// Имена событий, отправляемых в админ-панель.
const (
	EventReviewCreated = "review.created"
)

// Hub управляет WebSocket подключениями админ-панели. Каждое подключение
// несёт область видимости сотрудника; события о новых отзывах доставляются
// только тем, кому видна компания отзыва.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan event
}

type event struct {
	companyID uuid.UUID
	payload   []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan event, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case ev := <-h.broadcast:
			h.send(ev)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ReviewCreated рассылает событие о новом отзыве подходящим клиентам.
// Реализует service.ReviewEventSink.
func (h *Hub) ReviewCreated(review *models.Review) {
	// Контракт сообщения: "type" — имя события, "data" — полезная нагрузка.
	payload := map[string]any{
		"type": EventReviewCreated,
		"data": review,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Error("ws: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- event{companyID: review.CompanyID, payload: raw}:
	default:
		logger.Log.Warn("ws: очередь событий переполнена, событие пропущено")
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) send(ev event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.scope.Allows(ev.companyID) {
			continue
		}
		select {
		case client.send <- ev.payload:
		default:
			// медленный клиент: закрываем, чтобы не копить очередь
			go client.Close()
		}
	}
}
