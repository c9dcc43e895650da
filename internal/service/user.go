package service

import (
	"arena_web/internal/models"
	"arena_web/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	wallet   *WalletService
}

func NewUserService(userRepo repository.UserRepository, wallet *WalletService) *UserService {
	return &UserService{userRepo: userRepo, wallet: wallet}
}

// CreateUser 建立用戶並附帶一個空錢包
func (s *UserService) CreateUser(user *models.User) error {
	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	return s.wallet.CreateWallet(user.ID)
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.FindByUsername(username)
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}
