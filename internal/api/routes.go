package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arena_web/internal/api/handlers"
	"arena_web/internal/middleware"
	"arena_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.UserService)
	roomHandler := handlers.NewRoomHandler(services.RoomService)
	reviewHandler := handlers.NewReviewHandler(services.ReviewService)
	walletHandler := handlers.NewWalletHandler(services.WalletService)
	reportHandler := handlers.NewReportHandler(services.ReportService)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 自訂對戰房間相關
		rooms := authorized.Group("/rooms")
		{
			// 基本操作
			rooms.GET("", roomHandler.ListOpenRooms) // 獲取開放中的房間列表
			rooms.POST("", roomHandler.CreateRoom)   // 建立房間（扣報名費）
			rooms.GET("/mine", roomHandler.ListMyRooms)
			rooms.GET("/:id", roomHandler.GetRoom)

			// 對戰生命週期
			rooms.POST("/:id/join", roomHandler.JoinRoom)               // 加入房間（扣報名費）
			rooms.POST("/:id/ready", roomHandler.Ready)                 // 確認準備
			rooms.POST("/:id/credentials", roomHandler.SetCredentials)  // 開房方公佈房間資訊
			rooms.POST("/:id/result", roomHandler.SubmitResult)         // 提交結果與截圖
			rooms.POST("/:id/cancel", roomHandler.CancelRoom)           // 房主取消（退費）
		}

		// 錢包相關
		wallet := authorized.Group("/wallet")
		{
			wallet.GET("", walletHandler.GetWallet)
			wallet.GET("/transactions", walletHandler.GetTransactions)
		}

		// 檢舉
		authorized.POST("/reports", reportHandler.FileReport)

		// 通知
		authorized.GET("/notifications", wsHandler.ListNotifications)
		authorized.GET("/ws", wsHandler.HandleWebSocket)
	}

	// 管理員路由
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// 結果仲裁
		admin.GET("/reviews", reviewHandler.ListUnderReview)
		admin.POST("/reviews/:id/resolve", reviewHandler.Resolve) // 裁定勝方（發獎金）
		admin.POST("/reviews/:id/reject", reviewHandler.Reject)   // 駁回（退費）

		// 營運工具
		admin.POST("/wallets/topup", walletHandler.Topup)
		admin.GET("/reports", reportHandler.ListReports)
	}
}
