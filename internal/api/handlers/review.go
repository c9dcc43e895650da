package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arena_web/internal/models"
	"arena_web/internal/service"
)

// ReviewHandler 處理管理員審核相關的請求
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler 創建一個新的 ReviewHandler 實例
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListUnderReview 列出所有等待審核的房間及相關檢舉
func (h *ReviewHandler) ListUnderReview(c *gin.Context) {
	items, err := h.reviewService.ListUnderReview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢審核隊列"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Resolve 處理管理員裁定勝方的請求，勝方會獲得建立時凍結的獎金
func (h *ReviewHandler) Resolve(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		WinnerSide string `json:"winner_side" binding:"required,oneof=creator opponent"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviewService.Resolve(currentUserID(c), roomID, models.WinnerSide(input.WinnerSide)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已裁定勝方並發放獎金"})
}

// Reject 處理管理員駁回結果的請求，雙方的報名費會退還
func (h *ReviewHandler) Reject(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviewService.Reject(currentUserID(c), roomID, input.Reason); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已駁回結果並退還報名費"})
}
