package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStorage описывает методы для работы с профилями пользователей.
type UserStorage interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// CreateUser создаёт профиль; повторный вызов для того же id перезаписывает
	// профиль (как set в документном хранилище).
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// GetFCMToken возвращает push-токен пользователя, пустую строку если не задан.
	GetFCMToken(ctx context.Context, userID string) (string, error)
	SaveFCMToken(ctx context.Context, userID, token string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserStorage {
	return &userRepository{db: db}
}

const userColumns = "id, email, COALESCE(display_name, ''), phone_numbers, COALESCE(fcm_token, ''), created_at"

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err := row.Scan(&user.ID, &user.Email, &user.DisplayName,
		pq.Array(&user.PhoneNumbers), &user.FCMToken, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (id, email, display_name, phone_numbers, fcm_token, created_at)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
	          ON CONFLICT (id) DO UPDATE
	          SET email = EXCLUDED.email, display_name = EXCLUDED.display_name,
	              phone_numbers = EXCLUDED.phone_numbers
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.DisplayName, pq.Array(user.PhoneNumbers), user.FCMToken,
	).Scan(&user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.DisplayName,
			pq.Array(&user.PhoneNumbers), &user.FCMToken, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetFCMToken(ctx context.Context, userID string) (string, error) {
	var token string
	row := r.db.QueryRowContext(ctx, "SELECT COALESCE(fcm_token, '') FROM users WHERE id = $1", userID)
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Нет профиля — нет и токена, это не ошибка доставки
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (r *userRepository) SaveFCMToken(ctx context.Context, userID, token string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET fcm_token = $1 WHERE id = $2", token, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
