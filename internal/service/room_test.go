package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena_web/internal/models"
)

func TestCreateRoomDebitsCreatorAndFreezesPayout(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusOpen, room.Status)
	assert.Equal(t, int64(100), room.EntryFee)
	assert.Equal(t, int64(180), room.Payout) // 100 * 1.8，建立時凍結
	assert.Equal(t, uint(0), room.OpponentID)
	assert.Equal(t, int64(400), env.balance(t, creatorID))

	txs, err := env.svcs.WalletService.GetTransactions(creatorID)
	require.NoError(t, err)
	require.Len(t, txs, 2) // topup + entry_fee

	var feeTx *models.WalletTransaction
	for i := range txs {
		if txs[i].Type == models.WalletTxEntryFee {
			feeTx = &txs[i]
		}
	}
	require.NotNil(t, feeTx)
	assert.Equal(t, int64(100), feeTx.Amount)
	assert.Equal(t, int64(400), feeTx.Balance)
	require.NotNil(t, feeTx.RoomID)
	assert.Equal(t, room.ID, *feeTx.RoomID)
}

func TestCreateRoomInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "poor_creator", 50)

	_, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// 扣款失敗時房間也不能留下
	rooms, err := env.svcs.RoomService.ListOpenRooms()
	require.NoError(t, err)
	assert.Empty(t, rooms)
	assert.Equal(t, int64(50), env.balance(t, creatorID))
}

func TestCreateRoomValidatesConfig(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)

	input := defaultRoomInput()
	input.Odds = 0
	_, err := env.svcs.RoomService.CreateRoom(creatorID, input)
	assert.Error(t, err)

	input = defaultRoomInput()
	input.Rounds = 0
	_, err = env.svcs.RoomService.CreateRoom(creatorID, input)
	assert.Error(t, err)

	input = defaultRoomInput()
	input.EntryFee = -1
	_, err = env.svcs.RoomService.CreateRoom(creatorID, input)
	assert.Error(t, err)

	assert.Equal(t, int64(500), env.balance(t, creatorID))
}

func TestJoinRoom(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)
	opponentID := env.createUser(t, "opponent", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	require.NoError(t, env.svcs.RoomService.JoinRoom(room.ID, opponentID))

	joined, err := env.svcs.RoomService.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusWaitingJoin, joined.Status)
	assert.Equal(t, opponentID, joined.OpponentID)
	assert.Equal(t, int64(400), env.balance(t, opponentID))
}

func TestJoinRoomSelfForbidden(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	err = env.svcs.RoomService.JoinRoom(room.ID, creatorID)
	assert.ErrorIs(t, err, ErrSelfJoinForbidden)
	assert.Equal(t, int64(400), env.balance(t, creatorID))
}

func TestJoinRoomOnlyOneWinner(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)
	firstID := env.createUser(t, "first", 500)
	secondID := env.createUser(t, "second", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	require.NoError(t, env.svcs.RoomService.JoinRoom(room.ID, firstID))

	// 第二個加入者輸掉競爭，不能覆蓋對手也不能被扣款
	err = env.svcs.RoomService.JoinRoom(room.ID, secondID)
	assert.ErrorIs(t, err, ErrRoomNotJoinable)

	joined, err := env.svcs.RoomService.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, firstID, joined.OpponentID)
	assert.Equal(t, int64(500), env.balance(t, secondID))
}

func TestJoinRoomInsufficientBalanceLeavesRoomOpen(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)
	poorID := env.createUser(t, "poor", 10)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	err = env.svcs.RoomService.JoinRoom(room.ID, poorID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// 扣款失敗必須整筆回滾，房間維持開放
	stale, err := env.svcs.RoomService.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOpen, stale.Status)
	assert.Equal(t, uint(0), stale.OpponentID)
	assert.Equal(t, int64(10), env.balance(t, poorID))
}

func TestStaleVersionUpdateAffectsNothing(t *testing.T) {
	env := newTestEnv(t)
	roomID, _, _ := env.createJoinedRoom(t)

	room, err := env.repos.Room.FindByID(roomID)
	require.NoError(t, err)

	// 模擬並發落敗方：拿著過期版本號的更新不會動到任何資料列
	ok, err := env.repos.Room.CompareAndUpdate(env.db.DB, roomID, room.Version-1, map[string]interface{}{
		"status": models.RoomStatusCancelled,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.RoomStatusWaitingJoin, env.roomStatus(t, roomID))
}

func TestReadyGate(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, opponentID := env.createJoinedRoom(t)
	strangerID := env.createUser(t, "stranger", 500)

	err := env.svcs.RoomService.Ready(roomID, strangerID)
	assert.ErrorIs(t, err, ErrNotAParticipant)

	require.NoError(t, env.svcs.RoomService.Ready(roomID, creatorID))
	assert.Equal(t, models.RoomStatusWaitingJoin, env.roomStatus(t, roomID))

	// 重複確認不報錯
	require.NoError(t, env.svcs.RoomService.Ready(roomID, creatorID))

	require.NoError(t, env.svcs.RoomService.Ready(roomID, opponentID))
	assert.Equal(t, models.RoomStatusReadyToStart, env.roomStatus(t, roomID))
}

func TestSetCredentials(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, opponentID := env.createJoinedRoom(t)

	// 雙方準備完成前不能設定
	err := env.svcs.RoomService.SetCredentials(roomID, creatorID, "12345", "pw")
	assert.ErrorIs(t, err, ErrRoomStateInvalid)

	require.NoError(t, env.svcs.RoomService.Ready(roomID, creatorID))
	require.NoError(t, env.svcs.RoomService.Ready(roomID, opponentID))

	// room_maker 是房主，對手不能設定
	err = env.svcs.RoomService.SetCredentials(roomID, opponentID, "12345", "pw")
	assert.ErrorIs(t, err, ErrNotRoomMaker)

	err = env.svcs.RoomService.SetCredentials(roomID, creatorID, "", "pw")
	assert.Error(t, err)

	require.NoError(t, env.svcs.RoomService.SetCredentials(roomID, creatorID, "12345", "pw"))
	assert.Equal(t, models.RoomStatusStarted, env.roomStatus(t, roomID))

	room, err := env.svcs.RoomService.GetRoom(roomID)
	require.NoError(t, err)
	assert.Equal(t, "12345", room.GameRoomID)
	assert.Equal(t, "pw", room.RoomPassword)

	// started 狀態下允許修正
	require.NoError(t, env.svcs.RoomService.SetCredentials(roomID, creatorID, "67890", "pw2"))
	assert.Equal(t, models.RoomStatusStarted, env.roomStatus(t, roomID))
}

func TestSubmitResultRequiresEvidence(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, _ := env.createStartedRoom(t)

	err := env.svcs.RoomService.SubmitResult(roomID, creatorID, models.WinnerSideCreator, "")
	assert.ErrorIs(t, err, ErrEvidenceRequired)
	assert.Equal(t, models.RoomStatusStarted, env.roomStatus(t, roomID))
}

func TestSubmitResult(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, _ := env.createStartedRoom(t)
	strangerID := env.createUser(t, "stranger", 500)

	err := env.svcs.RoomService.SubmitResult(roomID, strangerID, models.WinnerSideCreator, "https://cdn.example.com/r.png")
	assert.ErrorIs(t, err, ErrNotAParticipant)

	require.NoError(t, env.svcs.RoomService.SubmitResult(roomID, creatorID, models.WinnerSideCreator, "https://cdn.example.com/r.png"))

	room, err := env.svcs.RoomService.GetRoom(roomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusUnderReview, room.Status)
	assert.Equal(t, models.WinnerSideCreator, room.WinnerSide) // 提交者的主張
	assert.Equal(t, "https://cdn.example.com/r.png", room.ResultScreenshotURL)

	// 已進入審核就不能再提交
	err = env.svcs.RoomService.SubmitResult(roomID, creatorID, models.WinnerSideCreator, "https://cdn.example.com/r2.png")
	assert.ErrorIs(t, err, ErrRoomStateInvalid)
}

func TestCancelOpenRoomRefundsCreator(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)
	opponentID := env.createUser(t, "opponent", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)
	assert.Equal(t, int64(400), env.balance(t, creatorID))

	require.NoError(t, env.svcs.RoomService.CancelRoom(room.ID, creatorID))
	assert.Equal(t, models.RoomStatusCancelled, env.roomStatus(t, room.ID))
	assert.Equal(t, int64(500), env.balance(t, creatorID))

	// 取消後不能再加入
	err = env.svcs.RoomService.JoinRoom(room.ID, opponentID)
	assert.ErrorIs(t, err, ErrRoomNotJoinable)
}

func TestCancelJoinedRoomRefundsBoth(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, opponentID := env.createJoinedRoom(t)

	require.NoError(t, env.svcs.RoomService.CancelRoom(roomID, creatorID))
	assert.Equal(t, models.RoomStatusCancelled, env.roomStatus(t, roomID))
	assert.Equal(t, int64(500), env.balance(t, creatorID))
	assert.Equal(t, int64(500), env.balance(t, opponentID))
}

func TestCancelGuards(t *testing.T) {
	env := newTestEnv(t)
	roomID, creatorID, opponentID := env.createJoinedRoom(t)

	// 只有房主可以取消
	err := env.svcs.RoomService.CancelRoom(roomID, opponentID)
	assert.ErrorIs(t, err, ErrOnlyCreatorCancel)

	// 雙方準備完成後不能取消
	require.NoError(t, env.svcs.RoomService.Ready(roomID, creatorID))
	require.NoError(t, env.svcs.RoomService.Ready(roomID, opponentID))
	err = env.svcs.RoomService.CancelRoom(roomID, creatorID)
	assert.ErrorIs(t, err, ErrRoomNotCancellable)
}

func TestListOpenRooms(t *testing.T) {
	env := newTestEnv(t)
	creatorID := env.createUser(t, "creator", 500)
	otherID := env.createUser(t, "other", 500)

	room, err := env.svcs.RoomService.CreateRoom(creatorID, defaultRoomInput())
	require.NoError(t, err)

	rooms, err := env.svcs.RoomService.ListOpenRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)

	// 有對手之後就不再出現在開放列表
	require.NoError(t, env.svcs.RoomService.JoinRoom(room.ID, otherID))
	rooms, err = env.svcs.RoomService.ListOpenRooms()
	require.NoError(t, err)
	assert.Empty(t, rooms)

	mine, err := env.svcs.RoomService.ListUserRooms(otherID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, room.ID, mine[0].ID)
}
