package repository

import (
	"gorm.io/gorm"

	"arena_web/internal/models"
	"arena_web/internal/storage"
)

type WalletRepository interface {
	Create(wallet *models.Wallet) error
	FindByUserID(userID uint) (*models.Wallet, error)
	// DebitGuarded 在餘額足夠時原子地扣款，回傳是否扣款成功。
	// 條件寫在 UPDATE 的 WHERE 內，避免「先讀餘額再寫回」的競態。
	DebitGuarded(tx *gorm.DB, userID uint, amount int64) (bool, error)
	// Credit 入帳，回傳是否有對應的錢包
	Credit(tx *gorm.DB, userID uint, amount int64) (bool, error)
	BalanceTx(tx *gorm.DB, userID uint) (int64, error)
	CreateTransaction(tx *gorm.DB, wtx *models.WalletTransaction) error
	Transactions(userID uint) ([]models.WalletTransaction, error)
}

type walletRepository struct {
	db *storage.PostgresDB
}

func NewWalletRepository(db *storage.PostgresDB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	return r.db.Create(wallet).Error
}

func (r *walletRepository) FindByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) DebitGuarded(tx *gorm.DB, userID uint, amount int64) (bool, error) {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *walletRepository) Credit(tx *gorm.DB, userID uint, amount int64) (bool, error) {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *walletRepository) BalanceTx(tx *gorm.DB, userID uint) (int64, error) {
	var wallet models.Wallet
	err := tx.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (r *walletRepository) CreateTransaction(tx *gorm.DB, wtx *models.WalletTransaction) error {
	return tx.Create(wtx).Error
}

func (r *walletRepository) Transactions(userID uint) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}
