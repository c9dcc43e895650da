package service

import "errors"

// 對戰引擎的錯誤分類。這些都是前置條件錯誤（4xx 類），
// 會原封不動地回傳給呼叫端，並且保證沒有任何狀態變動。
var (
	ErrInsufficientBalance = errors.New("錢包餘額不足")
	ErrRoomNotJoinable     = errors.New("房間不開放加入")
	ErrSelfJoinForbidden   = errors.New("不能加入自己建立的房間")
	ErrNotAParticipant     = errors.New("用戶不是此房間的參賽者")
	ErrNotRoomMaker        = errors.New("只有負責開房的一方可以設定房間資訊")
	ErrEvidenceRequired    = errors.New("必須提供結果截圖")
	ErrRoomNotUnderReview  = errors.New("房間不在審核狀態")
	ErrRoomAlreadyResolved = errors.New("房間已經結案")
	ErrRoomNotCancellable  = errors.New("房間目前無法取消")
	ErrOnlyCreatorCancel   = errors.New("只有房主可以取消房間")
	ErrRoomStateInvalid    = errors.New("房間狀態不允許此操作")
	// 同一房間的並發操作以樂觀鎖序列化，落敗的一方收到此錯誤後可重試
	ErrRoomConflict = errors.New("房間狀態已變更，請重試")
)
