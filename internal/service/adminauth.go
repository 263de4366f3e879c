package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/y84-dev/API-FRIZZLY/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginResult — результат логина администратора. Токен — это id записи
// администратора: middleware проверяет его прямым поиском в коллекции.
type AdminLoginResult struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// AdminAuthService — аутентификация администраторов и регистрация их устройств.
type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (*AdminLoginResult, error)
	SaveFCMToken(ctx context.Context, adminID, token string) error
}

type adminAuthService struct {
	log       *slog.Logger
	adminRepo storage.AdminStorage
}

func NewAdminAuthService(log *slog.Logger, adminRepo storage.AdminStorage) AdminAuthService {
	return &adminAuthService{log: log, adminRepo: adminRepo}
}

// ErrInvalidCredentials — неверная пара email/пароль (401)
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login проверяет пароль по bcrypt-хэшу и возвращает id администратора
// в качестве токена сессии.
func (s *adminAuthService) Login(ctx context.Context, email, password string) (*AdminLoginResult, error) {
	const op = "service.AdminAuthService.Login"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	admin, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			logger.Warn("admin not found")
			return nil, ErrInvalidCredentials
		}
		logger.Error("failed to get admin", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get admin: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, ErrInvalidCredentials
	}

	logger.Info("admin logged in", slog.String("adminID", admin.ID))
	return &AdminLoginResult{
		Token:   admin.ID,
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
	}, nil
}

func (s *adminAuthService) SaveFCMToken(ctx context.Context, adminID, token string) error {
	const op = "service.AdminAuthService.SaveFCMToken"

	if token == "" {
		return NewValidationError("fcmToken is required")
	}
	if err := s.adminRepo.SaveFCMToken(ctx, adminID, token); err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return NewNotFoundError("admin not found")
		}
		s.log.Error("failed to save fcm token", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
