package models

import (
	"gorm.io/gorm"
)

// Notification 表示發送給用戶的通知
// 即時推送走 WebSocket，同時保存一份供離線用戶之後查詢
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	RoomID  uint   `gorm:"index" json:"room_id,omitempty"`
	Type    string `gorm:"type:varchar(30);not null" json:"type"`
	Content string `gorm:"not null" json:"content"`
	Read    bool   `gorm:"not null;default:false" json:"read"`
}

// NewRoomNotification 建立一則房間相關的通知
func NewRoomNotification(userID, roomID uint, ntype, content string) *Notification {
	return &Notification{
		UserID:  userID,
		RoomID:  roomID,
		Type:    ntype,
		Content: content,
	}
}
