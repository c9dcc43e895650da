package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"arena_web/internal/models"
)

func TestDebitGuardedAgainstOverdraft(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "player", 100)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		return env.svcs.WalletService.Debit(tx, userID, 150, nil, models.WalletTxEntryFee, "test")
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(100), env.balance(t, userID))

	err = env.db.Transaction(func(tx *gorm.DB) error {
		return env.svcs.WalletService.Debit(tx, userID, 100, nil, models.WalletTxEntryFee, "test")
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.balance(t, userID))
}

func TestDebitRollsBackWithEnclosingTransaction(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "player", 100)

	// 外層交易失敗時扣款與帳本紀錄都必須回滾
	err := env.db.Transaction(func(tx *gorm.DB) error {
		if err := env.svcs.WalletService.Debit(tx, userID, 100, nil, models.WalletTxEntryFee, "test"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	assert.Equal(t, int64(100), env.balance(t, userID))
	txs, err := env.svcs.WalletService.GetTransactions(userID)
	require.NoError(t, err)
	require.Len(t, txs, 1) // 只有 topup
	assert.Equal(t, models.WalletTxTopup, txs[0].Type)
}

func TestTopupValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "player", 0)

	assert.Error(t, env.svcs.WalletService.Topup(userID, 0, "zero"))
	assert.Error(t, env.svcs.WalletService.Topup(userID, -5, "negative"))
	require.NoError(t, env.svcs.WalletService.Topup(userID, 50, "ok"))
	assert.Equal(t, int64(50), env.balance(t, userID))
}

func TestLedgerConservationBeforeResolution(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, opponentID := env.createJoinedRoom(t)

	// 結案前：兩位參賽者各被扣一筆報名費
	var total int64
	for _, userID := range []uint{creatorID, opponentID} {
		txs, err := env.svcs.WalletService.GetTransactions(userID)
		require.NoError(t, err)
		for _, wtx := range txs {
			if wtx.Type == models.WalletTxEntryFee && wtx.RoomID != nil && *wtx.RoomID == roomID {
				total += wtx.Amount
			}
		}
	}
	assert.Equal(t, int64(200), total)
}
