package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomStatusIsTerminal(t *testing.T) {
	assert.True(t, RoomStatusResolved.IsTerminal())
	assert.True(t, RoomStatusRejected.IsTerminal())
	assert.True(t, RoomStatusCancelled.IsTerminal())

	assert.False(t, RoomStatusOpen.IsTerminal())
	assert.False(t, RoomStatusWaitingJoin.IsTerminal())
	assert.False(t, RoomStatusUnderReview.IsTerminal())
}

func TestIsRoomMaker(t *testing.T) {
	room := &CustomRoom{CreatorID: 1, OpponentID: 2, RoomMaker: RoomMakerMe}
	assert.True(t, room.IsRoomMaker(1))
	assert.False(t, room.IsRoomMaker(2))

	room.RoomMaker = RoomMakerOpponent
	assert.False(t, room.IsRoomMaker(1))
	assert.True(t, room.IsRoomMaker(2))

	// 對手尚未加入時沒有人是開房方
	open := &CustomRoom{CreatorID: 1, RoomMaker: RoomMakerOpponent}
	assert.False(t, open.IsRoomMaker(1))
	assert.False(t, open.IsRoomMaker(2))
}

func TestIsParticipant(t *testing.T) {
	room := &CustomRoom{CreatorID: 1, OpponentID: 2}
	assert.True(t, room.IsParticipant(1))
	assert.True(t, room.IsParticipant(2))
	assert.False(t, room.IsParticipant(3))

	// OpponentID 為 0 表示尚未加入，不能把 0 當成參賽者
	open := &CustomRoom{CreatorID: 1}
	assert.False(t, open.IsParticipant(0))
}

func TestWinnerUserID(t *testing.T) {
	room := &CustomRoom{CreatorID: 7, OpponentID: 9}
	assert.Equal(t, uint(7), room.WinnerUserID(WinnerSideCreator))
	assert.Equal(t, uint(9), room.WinnerUserID(WinnerSideOpponent))
}
