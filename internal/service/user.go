package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// UserService — профили пользователей. Создание профиля публично:
// приложение вызывает его сразу после регистрации во внешнем сервисе.
type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// SaveFCMToken регистрирует push-токен устройства пользователя.
	SaveFCMToken(ctx context.Context, userID, token string) error
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserService {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "service.UserService.CreateUser"
	logger := s.log.With(slog.String("op", op))

	if strings.TrimSpace(user.ID) == "" {
		return nil, NewValidationError("userId is required")
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, NewValidationError("email is required")
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("user profile saved", slog.String("userID", created.ID))
	return created, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "service.UserService.GetUser"

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		s.log.Error("failed to get user", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *userService) SaveFCMToken(ctx context.Context, userID, token string) error {
	const op = "service.UserService.SaveFCMToken"

	if strings.TrimSpace(token) == "" {
		return NewValidationError("fcmToken is required")
	}
	if err := s.userRepo.SaveFCMToken(ctx, userID, token); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return NewNotFoundError("user not found")
		}
		s.log.Error("failed to save fcm token", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.UserService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
