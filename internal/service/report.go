package service

import (
	"errors"

	"arena_web/internal/models"
	"arena_web/internal/repository"
)

// ReportService 處理玩家之間的檢舉
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewReportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo}
}

// FileReport 建立一筆檢舉
func (s *ReportService) FileReport(reporterID, targetID uint, roomID *uint, reason string) error {
	if reporterID == targetID {
		return errors.New("不能檢舉自己")
	}
	if reason == "" {
		return errors.New("必須填寫檢舉原因")
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return errors.New("被檢舉的用戶不存在")
	}

	return s.reportRepo.Create(&models.Report{
		ReporterID: reporterID,
		TargetID:   targetID,
		RoomID:     roomID,
		Reason:     reason,
		Status:     models.ReportStatusOpen,
	})
}

// ListAll 列出所有檢舉供管理員查看
func (s *ReportService) ListAll() ([]models.Report, error) {
	return s.reportRepo.FindAll()
}
