package service

import (
	"errors"

	"gorm.io/gorm"

	"arena_web/internal/models"
	"arena_web/internal/repository"
	"arena_web/internal/storage"
)

// WalletService 是錢包帳本的邊界：所有餘額變動都必須經過
// Debit/Credit，並且和引發變動的房間狀態寫入共用同一個資料庫交易，
// 保證錢和狀態要嘛一起成功、要嘛一起回滾。
type WalletService struct {
	db         *storage.PostgresDB
	walletRepo repository.WalletRepository
}

func NewWalletService(db *storage.PostgresDB, walletRepo repository.WalletRepository) *WalletService {
	return &WalletService{db: db, walletRepo: walletRepo}
}

// CreateWallet 為新用戶建立一個空錢包
func (s *WalletService) CreateWallet(userID uint) error {
	return s.walletRepo.Create(&models.Wallet{UserID: userID})
}

// Debit 在呼叫端的交易內扣款，餘額不足時回傳 ErrInsufficientBalance
// 且不留下任何異動。每筆成功的扣款都會附帶一筆帳本紀錄。
func (s *WalletService) Debit(tx *gorm.DB, userID uint, amount int64, roomID *uint, txType models.WalletTxType, description string) error {
	ok, err := s.walletRepo.DebitGuarded(tx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientBalance
	}

	balance, err := s.walletRepo.BalanceTx(tx, userID)
	if err != nil {
		return err
	}

	return s.walletRepo.CreateTransaction(tx, &models.WalletTransaction{
		UserID:      userID,
		RoomID:      roomID,
		Type:        txType,
		Amount:      amount,
		Balance:     balance,
		Description: description,
	})
}

// Credit 在呼叫端的交易內入帳，錢包不存在視為系統錯誤
func (s *WalletService) Credit(tx *gorm.DB, userID uint, amount int64, roomID *uint, txType models.WalletTxType, description string) error {
	ok, err := s.walletRepo.Credit(tx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("錢包不存在")
	}

	balance, err := s.walletRepo.BalanceTx(tx, userID)
	if err != nil {
		return err
	}

	return s.walletRepo.CreateTransaction(tx, &models.WalletTransaction{
		UserID:      userID,
		RoomID:      roomID,
		Type:        txType,
		Amount:      amount,
		Balance:     balance,
		Description: description,
	})
}

// Topup 管理員為用戶儲值
func (s *WalletService) Topup(userID uint, amount int64, description string) error {
	if amount <= 0 {
		return errors.New("儲值金額必須大於零")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.Credit(tx, userID, amount, nil, models.WalletTxTopup, description)
	})
}

// GetWallet 查詢用戶錢包
func (s *WalletService) GetWallet(userID uint) (*models.Wallet, error) {
	return s.walletRepo.FindByUserID(userID)
}

// GetTransactions 查詢用戶的錢包異動紀錄
func (s *WalletService) GetTransactions(userID uint) ([]models.WalletTransaction, error) {
	return s.walletRepo.Transactions(userID)
}
