package repository

import "arena_web/internal/storage"

type Repositories struct {
	User         UserRepository
	Room         RoomRepository
	Wallet       WalletRepository
	Report       ReportRepository
	Notification NotificationRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Room:         NewRoomRepository(db),
		Wallet:       NewWalletRepository(db),
		Report:       NewReportRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
