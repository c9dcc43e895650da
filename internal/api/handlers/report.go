package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arena_web/internal/service"
)

// ReportHandler 處理玩家檢舉相關的請求
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler 創建一個新的 ReportHandler 實例
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FileReport 建立一筆對其他玩家的檢舉
func (h *ReportHandler) FileReport(c *gin.Context) {
	var input struct {
		TargetID uint   `json:"target_id" binding:"required"`
		RoomID   *uint  `json:"room_id"`
		Reason   string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reportService.FileReport(currentUserID(c), input.TargetID, input.RoomID, input.Reason); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "檢舉已送出"})
}

// ListReports 管理員查詢所有檢舉
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢檢舉紀錄"})
		return
	}

	c.JSON(http.StatusOK, reports)
}
