package models

import (
	"gorm.io/gorm"
)

// Report 表示玩家對另一位玩家的檢舉
// 審核介面會一併列出針對雙方參賽者的未結檢舉，供管理員裁定時參考
type Report struct {
	gorm.Model
	ReporterID uint         `gorm:"not null;index" json:"reporter_id"`
	TargetID   uint         `gorm:"not null;index" json:"target_id"`
	RoomID     *uint        `gorm:"index" json:"room_id,omitempty"` // 關聯的房間，可為空
	Reason     string       `gorm:"not null" json:"reason"`
	Status     ReportStatus `gorm:"type:varchar(10);not null;default:'open'" json:"status"`
}

// ReportStatus 定義檢舉處理狀態
type ReportStatus string

const (
	ReportStatusOpen    ReportStatus = "open"
	ReportStatusHandled ReportStatus = "handled"
)
