package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arena_web/internal/service"
)

// WalletHandler 處理錢包查詢與管理員儲值的請求
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler 創建一個新的 WalletHandler 實例
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet 查詢當前用戶的錢包餘額
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletService.GetWallet(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "錢包不存在"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetTransactions 查詢當前用戶的錢包異動紀錄
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	transactions, err := h.walletService.GetTransactions(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢異動紀錄"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// Topup 管理員為指定用戶儲值
func (h *WalletHandler) Topup(c *gin.Context) {
	var input struct {
		UserID      uint   `json:"user_id" binding:"required"`
		Amount      int64  `json:"amount" binding:"required,gt=0"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.walletService.Topup(input.UserID, input.Amount, input.Description); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "儲值成功"})
}
