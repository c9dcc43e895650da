package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"arena_web/internal/api"
	"arena_web/internal/middleware"
	"arena_web/internal/models"
	"arena_web/internal/repository"
	"arena_web/internal/service"
	"arena_web/internal/storage"
	"arena_web/internal/utils"
	"arena_web/pkg/config"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// 以配置初始化 JWT 簽發
	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.CustomRoom{},
		&models.Report{},
		&models.Notification{},
	); err != nil {
		logger.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 初始化 services
	services := service.NewServices(repos, db, logger)

	// 設置 Gin 路由
	r := gin.New()
	r.Use(middleware.LogMiddleware(logger), gin.Recovery())
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	logger.Infof("Server starting on %s", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
