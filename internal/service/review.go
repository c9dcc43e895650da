package service

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"arena_web/internal/models"
	"arena_web/internal/repository"
	"arena_web/internal/storage"
)

// ReviewItem 是審核隊列中的一個項目：
// 待審核的房間，加上針對雙方參賽者的未結檢舉供管理員參考
type ReviewItem struct {
	Room    Room            `json:"room"`
	Reports []models.Report `json:"reports"`
}

// ReviewService 是結果仲裁流程：列出待審核的房間，
// 由管理員裁定勝方（發放獎金）或駁回（退還報名費）。
// 每個房間最多只會被裁定一次。
type ReviewService struct {
	db         *storage.PostgresDB
	roomRepo   repository.RoomRepository
	reportRepo repository.ReportRepository
	wallet     *WalletService
	wsManager  *WebSocketManager
	log        *logrus.Logger
}

func NewReviewService(db *storage.PostgresDB, roomRepo repository.RoomRepository, reportRepo repository.ReportRepository, wallet *WalletService, wsManager *WebSocketManager, log *logrus.Logger) *ReviewService {
	return &ReviewService{
		db:         db,
		roomRepo:   roomRepo,
		reportRepo: reportRepo,
		wallet:     wallet,
		wsManager:  wsManager,
		log:        log,
	}
}

// ListUnderReview 列出所有等待審核的房間。
// 審核隊列就是 under_review 狀態的過濾視圖，不是獨立的物件。
func (s *ReviewService) ListUnderReview() ([]ReviewItem, error) {
	rooms, err := s.roomRepo.FindByStatus(models.RoomStatusUnderReview)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewItem, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		reports, err := s.reportRepo.FindOpenByTargets([]uint{room.CreatorID, room.OpponentID})
		if err != nil {
			return nil, err
		}
		items = append(items, ReviewItem{
			Room:    *convertModelToRoom(room),
			Reports: reports,
		})
	}
	return items, nil
}

// Resolve 由管理員裁定勝方。裁定結果獨立於提交者的主張，
// 會覆寫 WinnerSide。獎金（非報名費）在同一交易內入帳給勝方：
// 敗方的報名費已被消耗，勝方拿到的是建立時凍結的報名費乘賠率。
func (s *ReviewService) Resolve(adminID, roomID uint, winnerSide models.WinnerSide) error {
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
		if room.Status.IsTerminal() {
			return ErrRoomAlreadyResolved
		}
		if room.Status != models.RoomStatusUnderReview {
			return ErrRoomNotUnderReview
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"status":      models.RoomStatusResolved,
			"winner_side": winnerSide,
		})
		if err != nil {
			return err
		}
		if !ok {
			// under_review 狀態只會轉移到終止狀態，輸掉競態即代表已結案
			return ErrRoomAlreadyResolved
		}

		winnerID := room.WinnerUserID(winnerSide)
		return s.wallet.Credit(tx, winnerID, room.Payout, &room.ID, models.WalletTxPayout, "對戰獲勝獎金")
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"room_id": roomID,
		"admin":   adminID,
		"winner":  winnerSide,
		"payout":  room.Payout,
	}).Info("room resolved")
	s.wsManager.NotifyParticipants(room, "room_resolved", "管理員已裁定對戰結果")
	return nil
}

// Reject 由管理員駁回提交的結果。
// 退款策略：雙方參賽者各自退還報名費，並留下帳本紀錄。
func (s *ReviewService) Reject(adminID, roomID uint, reason string) error {
	var room *models.CustomRoom
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.roomRepo.FindByIDTx(tx, roomID)
		if err != nil {
			return err
		}
		if room.Status.IsTerminal() {
			return ErrRoomAlreadyResolved
		}
		if room.Status != models.RoomStatusUnderReview {
			return ErrRoomNotUnderReview
		}

		ok, err := s.roomRepo.CompareAndUpdate(tx, room.ID, room.Version, map[string]interface{}{
			"status":        models.RoomStatusRejected,
			"reject_reason": reason,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomAlreadyResolved
		}

		if err := s.wallet.Credit(tx, room.CreatorID, room.EntryFee, &room.ID, models.WalletTxRefund, "結果駁回退還報名費"); err != nil {
			return err
		}
		return s.wallet.Credit(tx, room.OpponentID, room.EntryFee, &room.ID, models.WalletTxRefund, "結果駁回退還報名費")
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"room_id": roomID,
		"admin":   adminID,
		"reason":  reason,
	}).Info("room rejected, fees refunded")
	s.wsManager.NotifyParticipants(room, "room_rejected", "管理員已駁回對戰結果，報名費已退還")
	return nil
}
