package models

import (
	"gorm.io/gorm"
)

// CustomRoom 表示一場自訂對戰（包含 1v1 的 Lone Wolf 模式）
// 房間由房主建立並鎖定報名費與賠率，對手加入後經過雙方準備、
// 公佈房間資訊、提交結果，最後由管理員裁定勝負並發放獎金。
// 房間進入終止狀態後不可再被修改，保留作為稽核紀錄。
type CustomRoom struct {
	gorm.Model
	Type       RoomType   `gorm:"type:varchar(20);not null"`
	Status     RoomStatus `gorm:"type:varchar(20);not null;index"`
	CreatorID  uint       `gorm:"not null;index"`
	OpponentID uint       `gorm:"index"` // 0 表示尚未有對手加入

	// 對戰規則，建立後不可變更，引擎只負責保存與顯示
	TeamSize       TeamSize `gorm:"type:varchar(10)"`
	Rounds         int      `gorm:"not null"`
	ThrowableLimit bool
	CharacterSkill bool
	HeadshotOnly   bool
	GunAttributes  bool
	CoinSetting    int

	// RoomMaker 決定由哪一方負責公佈遊戲房間資訊
	RoomMaker RoomMaker `gorm:"type:varchar(10);not null"`

	// 金額以最小貨幣單位（金幣）計，Payout 在建立時計算一次後凍結
	EntryFee int64   `gorm:"not null"`
	Odds     float64 `gorm:"not null"`
	Payout   int64   `gorm:"not null"`

	CreatorReady  bool
	OpponentReady bool

	// 遊戲內的房間編號與密碼，由 RoomMaker 指定的一方設定
	GameRoomID   string
	RoomPassword string

	// 結果截圖與勝方：提交結果時寫入的是參賽者的主張，
	// 管理員裁定時會以最終判決覆寫 WinnerSide
	ResultScreenshotURL string
	WinnerSide          WinnerSide `gorm:"type:varchar(10)"`
	RejectReason        string

	// 樂觀鎖版本號，每次狀態變更遞增，用於序列化同一房間的並發操作
	Version int `gorm:"not null;default:0"`
}

// RoomType 定義房間類型
type RoomType string

const (
	RoomTypeCustom   RoomType = "custom_room"
	RoomTypeLoneWolf RoomType = "lone_wolf"
)

// ValidRoomType 檢查房間類型是否有效
func ValidRoomType(t RoomType) bool {
	return t == RoomTypeCustom || t == RoomTypeLoneWolf
}

// RoomStatus 定義房間狀態
type RoomStatus string

const (
	RoomStatusOpen         RoomStatus = "open"           // 等待對手加入
	RoomStatusWaitingJoin  RoomStatus = "waiting_join"   // 對手已加入，等待雙方準備
	RoomStatusReadyToStart RoomStatus = "ready_to_start" // 雙方已準備，等待房間資訊
	RoomStatusStarted      RoomStatus = "started"        // 對戰進行中
	// result_submitted 是過渡狀態：提交結果後立即進入審核隊列
	RoomStatusResultSubmitted RoomStatus = "result_submitted"
	RoomStatusUnderReview     RoomStatus = "under_review" // 等待管理員審核
	RoomStatusResolved        RoomStatus = "resolved"     // 已裁定，獎金已發放
	RoomStatusRejected        RoomStatus = "rejected"     // 管理員駁回，報名費已退還
	RoomStatusCancelled       RoomStatus = "cancelled"    // 房主取消，報名費已退還
)

// IsTerminal 回報狀態是否為終止狀態
func (s RoomStatus) IsTerminal() bool {
	switch s {
	case RoomStatusResolved, RoomStatusRejected, RoomStatusCancelled:
		return true
	}
	return false
}

// TeamSize 定義隊伍規模
type TeamSize string

const (
	TeamSize1v1 TeamSize = "1v1"
	TeamSize2v2 TeamSize = "2v2"
	TeamSize3v3 TeamSize = "3v3"
	TeamSize4v4 TeamSize = "4v4"
)

// ValidTeamSize 檢查隊伍規模是否有效
func ValidTeamSize(t TeamSize) bool {
	switch t {
	case TeamSize1v1, TeamSize2v2, TeamSize3v3, TeamSize4v4:
		return true
	}
	return false
}

// RoomMaker 定義由哪一方負責開設遊戲房間（以房主視角）
type RoomMaker string

const (
	RoomMakerMe       RoomMaker = "me"       // 房主開房
	RoomMakerOpponent RoomMaker = "opponent" // 對手開房
)

// ValidRoomMaker 檢查開房方設定是否有效
func ValidRoomMaker(m RoomMaker) bool {
	return m == RoomMakerMe || m == RoomMakerOpponent
}

// WinnerSide 定義勝方
type WinnerSide string

const (
	WinnerSideCreator  WinnerSide = "creator"
	WinnerSideOpponent WinnerSide = "opponent"
)

// ValidWinnerSide 檢查勝方值是否有效
func ValidWinnerSide(w WinnerSide) bool {
	return w == WinnerSideCreator || w == WinnerSideOpponent
}

// IsParticipant 檢查用戶是否為此房間的參賽者
func (r *CustomRoom) IsParticipant(userID uint) bool {
	return userID == r.CreatorID || (r.OpponentID != 0 && userID == r.OpponentID)
}

// IsRoomMaker 檢查用戶是否為負責開房的一方
func (r *CustomRoom) IsRoomMaker(userID uint) bool {
	if r.RoomMaker == RoomMakerMe {
		return userID == r.CreatorID
	}
	return r.OpponentID != 0 && userID == r.OpponentID
}

// WinnerUserID 依勝方取得對應的用戶 ID，未加入對手時回傳 0
func (r *CustomRoom) WinnerUserID(side WinnerSide) uint {
	if side == WinnerSideCreator {
		return r.CreatorID
	}
	return r.OpponentID
}
