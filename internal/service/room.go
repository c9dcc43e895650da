package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"arena_web/internal/models"
	"arena_web/internal/repository"
	"arena_web/internal/storage"
)

// Room 是回傳給客戶端的房間視圖
type Room struct {
	ID                  uint              `json:"id"`
	Type                models.RoomType   `json:"type"`
	Status              models.RoomStatus `json:"status"`
	CreatorID           uint              `json:"creator_id"`
	OpponentID          uint              `json:"opponent_id,omitempty"`
	TeamSize            models.TeamSize   `json:"team_size"`
	Rounds              int               `json:"rounds"`
	ThrowableLimit      bool              `json:"throwable_limit"`
	CharacterSkill      bool              `json:"character_skill"`
	HeadshotOnly        bool              `json:"headshot_only"`
	GunAttributes       bool              `json:"gun_attributes"`
	CoinSetting         int               `json:"coin_setting"`
	RoomMaker           models.RoomMaker  `json:"room_maker"`
	EntryFee            int64             `json:"entry_fee"`
	Odds                float64           `json:"odds"`
	Payout              int64             `json:"payout"`
	CreatorReady        bool              `json:"creator_ready"`
	OpponentReady       bool              `json:"opponent_ready"`
	GameRoomID          string            `json:"game_room_id,omitempty"`
	RoomPassword        string            `json:"room_password,omitempty"`
	ResultScreenshotURL string            `json:"result_screenshot_url,omitempty"`
	WinnerSide          models.WinnerSide `json:"winner_side,omitempty"`
	RejectReason        string            `json:"reject_reason,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// CreateRoomInput 定義建立房間所需的設定
type CreateRoomInput struct {
	Type           models.RoomType
	TeamSize       models.TeamSize
	Rounds         int
	ThrowableLimit bool
	CharacterSkill bool
	HeadshotOnly   bool
	GunAttributes  bool
	CoinSetting    int
	RoomMaker      models.RoomMaker
	EntryFee       int64
	Odds           float64
}

// RoomService 是自訂對戰的生命週期管理器，負責狀態機的所有轉移。
// 每個會動到錢包的轉移（建立、加入、取消）都和帳本呼叫放在同一個
// 資料庫交易內；同一房間的並發操作透過版本號樂觀鎖序列化。
type RoomService struct {
	db        *storage.PostgresDB
	roomRepo  repository.RoomRepository
	wallet    *WalletService
	wsManager *WebSocketManager
	log       *logrus.Logger
}

func NewRoomService(db *storage.PostgresDB, roomRepo repository.RoomRepository, wallet *WalletService, wsManager *WebSocketManager, log *logrus.Logger) *RoomService {
	return &RoomService{
		db:        db,
		roomRepo:  roomRepo,
		wallet:    wallet,
		wsManager: wsManager,
		log:       log,
	}
}

// CreateRoom 建立房間並在同一交易內扣除房主的報名費。
// 獎金在此時以報名費乘上賠率計算一次後凍結。
func (s *RoomService) CreateRoom(creatorID uint, input CreateRoomInput) (*Room, error) {
	if err := validateRoomConfig(input); err != nil {
		return nil, err
	}

	room := &models.CustomRoom{
		Type:           input.Type,
		Status:         models.RoomStatusOpen,
		CreatorID:      creatorID,
		TeamSize:       input.TeamSize,
		Rounds:         input.Rounds,
		ThrowableLimit: input.ThrowableLimit,
		CharacterSkill: input.CharacterSkill,
		HeadshotOnly:   input.HeadshotOnly,
		GunAttributes:  input.GunAttributes,
		CoinSetting:    input.CoinSetting,
		RoomMaker:      input.RoomMaker,
		EntryFee:       input.EntryFee,
		Odds:           input.Odds,
		Payout:         CalcPayout(input.EntryFee, input.Odds),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.roomRepo.Create(tx, room); err != nil {
			return err
		}
		return s.wallet.Debit(tx, creatorID, room.EntryFee, &room.ID, models.WalletTxEntryFee, "建立房間報名費")
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"room_id":   room.ID,
		"creator":   creatorID,
		"entry_fee": room.EntryFee,
		"payout":    room.Payout,
	}).Info("room created")

	return convertModelToRoom(room), nil
}

func validateRoomConfig(input CreateRoomInput) error {
	if !models.ValidRoomType(input.Type) {
		return errors.New("無效的房間類型")
	}
	if !models.ValidTeamSize(input.TeamSize) {
		return errors.New("無效的隊伍規模")
	}
	if !models.ValidRoomMaker(input.RoomMaker) {
		return errors.New("無效的開房方設定")
	}
	if input.Rounds < 1 {
		return errors.New("回合數必須至少為一")
	}
	if input.EntryFee < 0 {
		return errors.New("報名費不能為負數")
	}
	if input.Odds <= 0 {
		return errors.New("賠率必須大於零")
	}
	return nil
}

// JoinRoom 讓對手加入開放中的房間，並在同一交易內扣除報名費。
// 多個用戶同時搶同一個房間時，只有一人會成功，
// 其餘的會收到 ErrRoomNotJoinable。
func (s *RoomService) JoinRoom(roomID, userID uint) error {
	var joined *models.CustomRoom
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if room.Status != models.RoomStatusOpen {
			return ErrRoomNotJoinable
		}
		if userID == room.CreatorID {
			return ErrSelfJoinForbidden
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"opponent_id": userID,
			"status":      models.RoomStatusWaitingJoin,
		})
		if err != nil {
			return err
		}
		if !ok {
			// 另一個加入或取消搶先完成了
			return ErrRoomNotJoinable
		}

		if err := s.wallet.Debit(tx, userID, room.EntryFee, &room.ID, models.WalletTxEntryFee, "加入房間報名費"); err != nil {
			return err
		}

		joined = room
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"room_id": roomID, "opponent": userID}).Info("opponent joined room")
	s.wsManager.NotifyUser(joined.CreatorID, roomID, "room_joined", "對手已加入你的房間")
	return nil
}

// Ready 標記參賽者已準備。重複確認不會報錯；
// 雙方都準備好後房間進入 ready_to_start。
func (s *RoomService) Ready(roomID, userID uint) error {
	var room *models.CustomRoom
	var bothReady bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if !room.IsParticipant(userID) {
			return ErrNotAParticipant
		}
		if room.Status != models.RoomStatusWaitingJoin && room.Status != models.RoomStatusReadyToStart {
			return ErrRoomStateInvalid
		}

		updates := map[string]interface{}{}
		if userID == room.CreatorID {
			if room.CreatorReady {
				return nil // 重複確認，不需更新
			}
			updates["creator_ready"] = true
			bothReady = room.OpponentReady
		} else {
			if room.OpponentReady {
				return nil
			}
			updates["opponent_ready"] = true
			bothReady = room.CreatorReady
		}
		if bothReady {
			updates["status"] = models.RoomStatusReadyToStart
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, updates)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	if bothReady {
		s.log.WithField("room_id", roomID).Info("both sides ready")
		s.wsManager.NotifyParticipants(room, "room_ready", "雙方已準備就緒，請開房方設定房間資訊")
	}
	return nil
}

// SetCredentials 由 RoomMaker 指定的一方公佈遊戲內的房間編號與密碼。
// 第一次設定會讓房間進入 started，之後仍可在 started 狀態下修正。
func (s *RoomService) SetCredentials(roomID, userID uint, gameRoomID, roomPassword string) error {
	if gameRoomID == "" {
		return errors.New("房間編號不能為空")
	}

	var room *models.CustomRoom
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if !room.IsParticipant(userID) {
			return ErrNotAParticipant
		}
		if !room.IsRoomMaker(userID) {
			return ErrNotRoomMaker
		}
		if room.Status != models.RoomStatusReadyToStart && room.Status != models.RoomStatusStarted {
			return ErrRoomStateInvalid
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"game_room_id":  gameRoomID,
			"room_password": roomPassword,
			"status":        models.RoomStatusStarted,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"room_id": roomID, "by": userID}).Info("room credentials published")
	s.wsManager.NotifyParticipants(room, "room_started", "房間資訊已公佈，對戰開始")
	return nil
}

// SubmitResult 由任一參賽者提交對戰結果與截圖證據。
// 提交的勝方只是參賽者的主張，最終以管理員裁定為準。
// 房間隨即進入審核隊列（result_submitted 為過渡狀態，直接落地 under_review）。
func (s *RoomService) SubmitResult(roomID, userID uint, winnerSide models.WinnerSide, screenshotURL string) error {
	if screenshotURL == "" {
		return ErrEvidenceRequired
	}
	if !models.ValidWinnerSide(winnerSide) {
		return errors.New("無效的勝方")
	}

	var room *models.CustomRoom
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if !room.IsParticipant(userID) {
			return ErrNotAParticipant
		}
		if room.Status != models.RoomStatusStarted {
			return ErrRoomStateInvalid
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"result_screenshot_url": screenshotURL,
			"winner_side":           winnerSide,
			"status":                models.RoomStatusUnderReview,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"room_id": roomID,
		"by":      userID,
		"claimed": winnerSide,
	}).Info("result submitted, room under review")
	s.wsManager.NotifyParticipants(room, "result_submitted", "結果已提交，等待管理員審核")
	return nil
}

// CancelRoom 由房主在對手尚未準備完成前取消房間，
// 並在同一交易內退還已繳的報名費（含已加入的對手）。
func (s *RoomService) CancelRoom(roomID, userID uint) error {
	var room *models.CustomRoom
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if userID != room.CreatorID {
			return ErrOnlyCreatorCancel
		}
		if room.Status != models.RoomStatusOpen && room.Status != models.RoomStatusWaitingJoin {
			return ErrRoomNotCancellable
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"status": models.RoomStatusCancelled,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomConflict
		}

		if err := s.wallet.Credit(tx, room.CreatorID, room.EntryFee, &room.ID, models.WalletTxRefund, "取消房間退還報名費"); err != nil {
			return err
		}
		if room.OpponentID != 0 {
			if err := s.wallet.Credit(tx, room.OpponentID, room.EntryFee, &room.ID, models.WalletTxRefund, "取消房間退還報名費"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"room_id": roomID}).Info("room cancelled, fees refunded")
	s.wsManager.NotifyParticipants(room, "room_cancelled", "房間已取消，報名費已退還")
	return nil
}

// GetRoom 查詢單一房間
func (s *RoomService) GetRoom(roomID uint) (*Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		return nil, err
	}
	return convertModelToRoom(room), nil
}

// ListOpenRooms 查詢所有等待對手加入的房間
func (s *RoomService) ListOpenRooms() ([]Room, error) {
	rooms, err := s.roomRepo.FindOpen()
	if err != nil {
		return nil, err
	}
	return convertModelsToRooms(rooms), nil
}

// ListUserRooms 查詢用戶參與的所有房間
func (s *RoomService) ListUserRooms(userID uint) ([]Room, error) {
	rooms, err := s.roomRepo.FindByParticipant(userID)
	if err != nil {
		return nil, err
	}
	return convertModelsToRooms(rooms), nil
}

func convertModelToRoom(model *models.CustomRoom) *Room {
	return &Room{
		ID:                  model.ID,
		Type:                model.Type,
		Status:              model.Status,
		CreatorID:           model.CreatorID,
		OpponentID:          model.OpponentID,
		TeamSize:            model.TeamSize,
		Rounds:              model.Rounds,
		ThrowableLimit:      model.ThrowableLimit,
		CharacterSkill:      model.CharacterSkill,
		HeadshotOnly:        model.HeadshotOnly,
		GunAttributes:       model.GunAttributes,
		CoinSetting:         model.CoinSetting,
		RoomMaker:           model.RoomMaker,
		EntryFee:            model.EntryFee,
		Odds:                model.Odds,
		Payout:              model.Payout,
		CreatorReady:        model.CreatorReady,
		OpponentReady:       model.OpponentReady,
		GameRoomID:          model.GameRoomID,
		RoomPassword:        model.RoomPassword,
		ResultScreenshotURL: model.ResultScreenshotURL,
		WinnerSide:          model.WinnerSide,
		RejectReason:        model.RejectReason,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func convertModelsToRooms(roomModels []models.CustomRoom) []Room {
	rooms := make([]Room, 0, len(roomModels))
	for i := range roomModels {
		rooms = append(rooms, *convertModelToRoom(&roomModels[i]))
	}
	return rooms
}
