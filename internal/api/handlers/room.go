package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arena_web/internal/models"
	"arena_web/internal/service"
)

// RoomHandler 處理與自訂對戰房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom 處理建立房間的請求，會同時扣除房主的報名費
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Type           string  `json:"type" binding:"required,oneof=custom_room lone_wolf"`
		TeamSize       string  `json:"team_size" binding:"required,oneof=1v1 2v2 3v3 4v4"`
		Rounds         int     `json:"rounds" binding:"required,min=1"`
		ThrowableLimit bool    `json:"throwable_limit"`
		CharacterSkill bool    `json:"character_skill"`
		HeadshotOnly   bool    `json:"headshot_only"`
		GunAttributes  bool    `json:"gun_attributes"`
		CoinSetting    int     `json:"coin_setting"`
		RoomMaker      string  `json:"room_maker" binding:"required,oneof=me opponent"`
		EntryFee       int64   `json:"entry_fee" binding:"gte=0"`
		Odds           float64 `json:"odds" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(currentUserID(c), service.CreateRoomInput{
		Type:           models.RoomType(input.Type),
		TeamSize:       models.TeamSize(input.TeamSize),
		Rounds:         input.Rounds,
		ThrowableLimit: input.ThrowableLimit,
		CharacterSkill: input.CharacterSkill,
		HeadshotOnly:   input.HeadshotOnly,
		GunAttributes:  input.GunAttributes,
		CoinSetting:    input.CoinSetting,
		RoomMaker:      models.RoomMaker(input.RoomMaker),
		EntryFee:       input.EntryFee,
		Odds:           input.Odds,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListOpenRooms 處理獲取開放中房間列表的請求
func (h *RoomHandler) ListOpenRooms(c *gin.Context) {
	rooms, err := h.roomService.ListOpenRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ListMyRooms 處理獲取用戶參與房間列表的請求
func (h *RoomHandler) ListMyRooms(c *gin.Context) {
	rooms, err := h.roomService.ListUserRooms(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// GetRoom 處理獲取房間訊息的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// JoinRoom 處理加入房間的請求，會同時扣除對手的報名費
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.JoinRoom(roomID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入房間"})
}

// Ready 處理參賽者確認準備的請求
func (h *RoomHandler) Ready(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Ready(roomID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已確認準備"})
}

// SetCredentials 處理開房方公佈遊戲房間資訊的請求
func (h *RoomHandler) SetCredentials(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		GameRoomID   string `json:"game_room_id" binding:"required"`
		RoomPassword string `json:"room_password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roomService.SetCredentials(roomID, currentUserID(c), input.GameRoomID, input.RoomPassword); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房間資訊已公佈"})
}

// SubmitResult 處理參賽者提交對戰結果的請求
func (h *RoomHandler) SubmitResult(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		WinnerSide    string `json:"winner_side" binding:"required,oneof=creator opponent"`
		ScreenshotURL string `json:"screenshot_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roomService.SubmitResult(roomID, currentUserID(c), models.WinnerSide(input.WinnerSide), input.ScreenshotURL); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "結果已提交，等待管理員審核"})
}

// CancelRoom 處理房主取消房間的請求，會退還已繳的報名費
func (h *RoomHandler) CancelRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.CancelRoom(roomID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房間已取消，報名費已退還"})
}
