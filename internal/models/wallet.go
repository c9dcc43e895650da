package models

import (
	"gorm.io/gorm"
)

// Wallet 表示用戶的金幣錢包，每位用戶一個
// 餘額只能透過錢包帳本服務的 Debit/Credit 變動，不允許直接讀改寫
type Wallet struct {
	gorm.Model
	UserID  uint  `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance int64 `gorm:"not null;default:0" json:"balance"` // 以最小貨幣單位（金幣）計
}

// WalletTransaction 表示一筆錢包異動紀錄，作為帳本的稽核軌跡
type WalletTransaction struct {
	gorm.Model
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	RoomID      *uint             `gorm:"index" json:"room_id,omitempty"` // 關聯的房間，非房間異動時為空
	Type        WalletTxType      `gorm:"type:varchar(20);not null" json:"type"`
	Amount      int64             `gorm:"not null" json:"amount"`  // 異動金額，永遠為正數，方向由 Type 決定
	Balance     int64             `gorm:"not null" json:"balance"` // 異動後餘額
	Description string            `json:"description"`
}

// WalletTxType 定義錢包異動類型
type WalletTxType string

const (
	WalletTxEntryFee WalletTxType = "entry_fee" // 扣款：報名費
	WalletTxRefund   WalletTxType = "refund"    // 入帳：取消或駁回時退還報名費
	WalletTxPayout   WalletTxType = "payout"    // 入帳：裁定獲勝的獎金
	WalletTxTopup    WalletTxType = "topup"     // 入帳：管理員儲值
)
