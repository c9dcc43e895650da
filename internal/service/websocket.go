package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"arena_web/internal/models"
	"arena_web/internal/repository"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn           // WebSocket 連接
	UserID   uint                      // 用戶 ID
	SendChan chan *models.Notification // 通知發送通道，用於異步傳送
}

// WebSocketManager 管理所有的 WebSocket 連接並負責通知推送。
// 通知是 fire-and-forget：推送失敗不影響引發通知的狀態變更，
// 每則通知都會先保存一份，離線用戶之後仍可查詢。
type WebSocketManager struct {
	clients          map[uint]map[*Client]bool // 兩層 map: userID -> client -> bool
	clientsMux       sync.RWMutex              // 用於保護 clients map 的讀寫鎖
	notificationRepo repository.NotificationRepository
	log              *logrus.Logger
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager(notificationRepo repository.NotificationRepository, log *logrus.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients:          make(map[uint]map[*Client]bool),
		notificationRepo: notificationRepo,
		log:              log,
	}
}

// HandleConnection 處理新的 WebSocket 連接請求
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn, userID uint) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		SendChan: make(chan *models.Notification, 256), // 設置緩衝大小為 256 的通道
	}

	m.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	// 啟動讀寫處理
	go m.writePump(client)
	m.readPump(client)
}

// readPump 維持連接存活並在客戶端斷線時結束
// 通知是單向推送，收到的訊息一律丟棄
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.log.WithField("user_id", client.UserID).Warnf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向客戶端發送通知的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			messageBytes, err := json.Marshal(notification)
			if err != nil {
				m.log.Warnf("notification encoding error: %v", err)
				continue
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NotifyUser 向指定用戶發送通知：先保存，再推送給所有在線連接
func (m *WebSocketManager) NotifyUser(userID, roomID uint, ntype, content string) {
	notification := models.NewRoomNotification(userID, roomID, ntype, content)
	if err := m.notificationRepo.Create(notification); err != nil {
		m.log.Warnf("notification save error: %v", err)
	}

	m.clientsMux.RLock()
	clients := m.clients[userID]
	m.clientsMux.RUnlock()

	for client := range clients {
		select {
		case client.SendChan <- notification:
			// 通知成功加入發送隊列
		default:
			// 客戶端通知隊列已滿，關閉連接
			m.removeClient(client)
			client.Conn.Close()
		}
	}
}

// NotifyParticipants 向房間的所有參賽者發送相同的通知
func (m *WebSocketManager) NotifyParticipants(room *models.CustomRoom, ntype, content string) {
	m.NotifyUser(room.CreatorID, room.ID, ntype, content)
	if room.OpponentID != 0 {
		m.NotifyUser(room.OpponentID, room.ID, ntype, content)
	}
}

// ListNotifications 查詢用戶的通知紀錄
func (m *WebSocketManager) ListNotifications(userID uint) ([]models.Notification, error) {
	return m.notificationRepo.FindByUserID(userID)
}

// addClient 安全地添加新的客戶端連接
func (m *WebSocketManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.UserID] == nil {
		m.clients[client.UserID] = make(map[*Client]bool)
	}
	m.clients[client.UserID][client] = true
}

// removeClient 安全地移除客戶端連接
func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.UserID]; ok {
		delete(clients, client)
		// 如果用戶沒有任何連接了，刪除該用戶的條目
		if len(clients) == 0 {
			delete(m.clients, client.UserID)
		}
	}
}

// GetOnlineClients 獲取指定用戶的在線連接數量
func (m *WebSocketManager) GetOnlineClients(userID uint) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[userID])
}
