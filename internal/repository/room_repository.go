package repository

import (
	"gorm.io/gorm"

	"arena_web/internal/models"
	"arena_web/internal/storage"
)

type RoomRepository interface {
	Create(tx *gorm.DB, room *models.CustomRoom) error
	FindByID(id uint) (*models.CustomRoom, error)
	FindByIDTx(tx *gorm.DB, id uint) (*models.CustomRoom, error)
	FindOpen() ([]models.CustomRoom, error)
	FindByStatus(status models.RoomStatus) ([]models.CustomRoom, error)
	FindByParticipant(userID uint) ([]models.CustomRoom, error)
	// CompareAndUpdate 以版本號做樂觀鎖更新：只有版本仍相符時才寫入，
	// 並同時將版本號遞增。回傳是否有更新到資料列。
	CompareAndUpdate(tx *gorm.DB, roomID uint, version int, updates map[string]interface{}) (bool, error)
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(tx *gorm.DB, room *models.CustomRoom) error {
	return tx.Create(room).Error
}

func (r *roomRepository) FindByID(id uint) (*models.CustomRoom, error) {
	return r.FindByIDTx(r.db.DB, id)
}

func (r *roomRepository) FindByIDTx(tx *gorm.DB, id uint) (*models.CustomRoom, error) {
	var room models.CustomRoom
	err := tx.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindOpen 查詢所有等待對手加入的房間
func (r *roomRepository) FindOpen() ([]models.CustomRoom, error) {
	return r.FindByStatus(models.RoomStatusOpen)
}

func (r *roomRepository) FindByStatus(status models.RoomStatus) ([]models.CustomRoom, error) {
	var rooms []models.CustomRoom
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

// FindByParticipant 查詢用戶作為房主或對手參與的所有房間
func (r *roomRepository) FindByParticipant(userID uint) ([]models.CustomRoom, error) {
	var rooms []models.CustomRoom
	err := r.db.Where("creator_id = ? OR opponent_id = ?", userID, userID).
		Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) CompareAndUpdate(tx *gorm.DB, roomID uint, version int, updates map[string]interface{}) (bool, error) {
	updates["version"] = gorm.Expr("version + 1")
	res := tx.Model(&models.CustomRoom{}).
		Where("id = ? AND version = ?", roomID, version).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
