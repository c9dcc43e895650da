package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"arena_web/internal/service"
)

// handleServiceError 將服務層錯誤對應到 HTTP 狀態碼。
// 前置條件錯誤的訊息原封不動回傳；
// 非預期的錯誤只回傳通用訊息，不洩漏內部狀態。
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "資源不存在"})
	case errors.Is(err, service.ErrNotAParticipant),
		errors.Is(err, service.ErrNotRoomMaker),
		errors.Is(err, service.ErrOnlyCreatorCancel):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoomAlreadyResolved),
		errors.Is(err, service.ErrRoomConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrRoomNotJoinable),
		errors.Is(err, service.ErrSelfJoinForbidden),
		errors.Is(err, service.ErrEvidenceRequired),
		errors.Is(err, service.ErrRoomNotUnderReview),
		errors.Is(err, service.ErrRoomNotCancellable),
		errors.Is(err, service.ErrRoomStateInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "系統發生錯誤"})
	}
}

// parseIDParam 解析路徑中的資源 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}
