package service

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"arena_web/internal/models"
	"arena_web/internal/repository"
	"arena_web/internal/storage"
)

type testEnv struct {
	svcs  *Services
	repos *repository.Repositories
	db    *storage.PostgresDB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "arena_test.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	db := &storage.PostgresDB{DB: gdb}
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.CustomRoom{},
		&models.Report{},
		&models.Notification{},
	))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repos := repository.NewRepositories(db)
	return &testEnv{
		svcs:  NewServices(repos, db, logger),
		repos: repos,
		db:    db,
	}
}

func (e *testEnv) createUser(t *testing.T, username string, balance int64) uint {
	t.Helper()

	user := &models.User{Username: username, Password: "secret", Role: models.RolePlayer}
	require.NoError(t, e.svcs.UserService.CreateUser(user))
	if balance > 0 {
		require.NoError(t, e.svcs.WalletService.Topup(user.ID, balance, "test topup"))
	}
	return user.ID
}

func (e *testEnv) balance(t *testing.T, userID uint) int64 {
	t.Helper()

	wallet, err := e.svcs.WalletService.GetWallet(userID)
	require.NoError(t, err)
	return wallet.Balance
}

func (e *testEnv) roomStatus(t *testing.T, roomID uint) models.RoomStatus {
	t.Helper()

	room, err := e.repos.Room.FindByID(roomID)
	require.NoError(t, err)
	return room.Status
}

func defaultRoomInput() CreateRoomInput {
	return CreateRoomInput{
		Type:      models.RoomTypeLoneWolf,
		TeamSize:  models.TeamSize1v1,
		Rounds:    7,
		RoomMaker: models.RoomMakerMe,
		EntryFee:  100,
		Odds:      1.8,
	}
}

// createJoinedRoom 建立一個已有雙方參賽者的房間
func (e *testEnv) createJoinedRoom(t *testing.T) (roomID, creatorID, opponentID uint) {
	t.Helper()

	creatorID = e.createUser(t, uniqueName(t, "creator"), 500)
	opponentID = e.createUser(t, uniqueName(t, "opponent"), 500)

	room, err := e.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)
	require.NoError(t, e.svcs.RoomService.JoinRoom(room.ID, opponentID))
	return room.ID, creatorID, opponentID
}

// createStartedRoom 建立一個雙方已準備且已公佈房間資訊的房間
func (e *testEnv) createStartedRoom(t *testing.T) (roomID, creatorID, opponentID uint) {
	t.Helper()

	roomID, creatorID, opponentID = e.createJoinedRoom(t)
	require.NoError(t, e.svcs.RoomService.Ready(roomID, creatorID))
	require.NoError(t, e.svcs.RoomService.Ready(roomID, opponentID))
	require.NoError(t, e.svcs.RoomService.SetCredentials(roomID, creatorID, "12345", "pw"))
	return roomID, creatorID, opponentID
}

// createUnderReviewRoom 建立一個已提交結果、等待審核的房間
func (e *testEnv) createUnderReviewRoom(t *testing.T) (roomID, creatorID, opponentID uint) {
	t.Helper()

	roomID, creatorID, opponentID = e.createStartedRoom(t)
	require.NoError(t, e.svcs.RoomService.SubmitResult(roomID, creatorID, models.WinnerSideCreator, "https://cdn.example.com/result.png"))
	return roomID, creatorID, opponentID
}

func uniqueName(t *testing.T, prefix string) string {
	return prefix + "_" + t.Name()
}
