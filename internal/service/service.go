package service

import (
	"github.com/sirupsen/logrus"

	"arena_web/internal/repository"
	"arena_web/internal/storage"
)

type Services struct {
	UserService      *UserService
	WalletService    *WalletService
	RoomService      *RoomService
	ReviewService    *ReviewService
	ReportService    *ReportService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories, db *storage.PostgresDB, log *logrus.Logger) *Services {
	wsManager := NewWebSocketManager(repos.Notification, log)

	walletService := NewWalletService(db, repos.Wallet)
	userService := NewUserService(repos.User, walletService)
	roomService := NewRoomService(db, repos.Room, walletService, wsManager, log)
	reviewService := NewReviewService(db, repos.Room, repos.Report, walletService, wsManager, log)
	reportService := NewReportService(repos.Report, repos.User)

	return &Services{
		UserService:      userService,
		WalletService:    walletService,
		RoomService:      roomService,
		ReviewService:    reviewService,
		ReportService:    reportService,
		WebSocketManager: wsManager,
	}
}
