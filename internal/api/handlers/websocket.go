package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"arena_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理通知推送的 WebSocket 連接
type WebSocketHandler struct {
	wsManager *service.WebSocketManager
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager}
}

// HandleWebSocket 處理 WebSocket 連接請求，
// 連接後用戶會即時收到與自己相關的房間通知
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := currentUserID(c)

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 處理客戶端連接，阻塞至連接關閉
	h.wsManager.HandleConnection(conn, userID)
}

// ListNotifications 查詢當前用戶的通知紀錄
func (h *WebSocketHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.wsManager.ListNotifications(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢通知"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
