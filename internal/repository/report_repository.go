package repository

import (
	"arena_web/internal/models"
	"arena_web/internal/storage"
)

type ReportRepository interface {
	Create(report *models.Report) error
	FindAll() ([]models.Report, error)
	// FindOpenByTargets 查詢針對指定用戶們的未結檢舉
	FindOpenByTargets(targetIDs []uint) ([]models.Report, error)
}

type reportRepository struct {
	db *storage.PostgresDB
}

func NewReportRepository(db *storage.PostgresDB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindAll() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindOpenByTargets(targetIDs []uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("target_id IN ? AND status = ?", targetIDs, models.ReportStatusOpen).
		Order("created_at DESC").Find(&reports).Error
	return reports, err
}
