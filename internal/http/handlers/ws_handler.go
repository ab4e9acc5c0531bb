package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/repository"
	"github.com/ocenagor/admin-backend/internal/service"
	"github.com/ocenagor/admin-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений админ-панели.
type WSHandler struct {
	hub          *ws.Hub
	tokenManager *service.TokenManager
	users        *repository.UserRepository
	upgrader     websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, tokens *service.TokenManager, users *repository.UserRepository) *WSHandler {
	return &WSHandler{
		hub:          hub,
		tokenManager: tokens,
		users:        users,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /api/ws?token=...
// Токен передаётся query-параметром, потому что браузерный WebSocket
// не умеет ставить заголовок Authorization.
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access токен обязателен"})
		return
	}

	userID, _, err := h.tokenManager.ParseAccess(rawToken)
	if err != nil || userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "невалидный access токен"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "учётная запись недоступна"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	client := ws.NewClient(conn, h.hub, models.ScopeForUser(user))
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
