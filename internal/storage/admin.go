package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

var ErrAdminNotFound = errors.New("admin not found")

// AdminStorage описывает методы для работы с администраторами.
type AdminStorage interface {
	// GetAdminByEmail ищет администратора по email (для логина).
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	// GetAdminByID ищет администратора по id. Id записи — это и есть
	// bearer-токен админской сессии.
	GetAdminByID(ctx context.Context, id string) (*models.Admin, error)
	// ListAdminsWithTokens возвращает администраторов с зарегистрированными
	// push-токенами (для рассылки алертов о новых заказах).
	ListAdminsWithTokens(ctx context.Context) ([]*models.Admin, error)
	// SaveFCMToken сохраняет push-токен устройства администратора.
	SaveFCMToken(ctx context.Context, adminID, token string) error
}

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository создаёт новый репозиторий администраторов.
func NewAdminRepository(db *sql.DB) AdminStorage {
	return &adminRepository{db: db}
}

const adminColumns = "id, email, name, pass_hash, COALESCE(fcm_token, ''), created_at"

func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	row := r.db.QueryRowContext(ctx, "SELECT "+adminColumns+" FROM admins WHERE email = $1", email)
	if err := row.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PassHash, &admin.FCMToken, &admin.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	admin := &models.Admin{}
	row := r.db.QueryRowContext(ctx, "SELECT "+adminColumns+" FROM admins WHERE id = $1", id)
	if err := row.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PassHash, &admin.FCMToken, &admin.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) ListAdminsWithTokens(ctx context.Context) ([]*models.Admin, error) {
	query := "SELECT " + adminColumns + " FROM admins WHERE fcm_token IS NOT NULL AND fcm_token <> ''"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*models.Admin
	for rows.Next() {
		admin := &models.Admin{}
		if err := rows.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PassHash, &admin.FCMToken, &admin.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) SaveFCMToken(ctx context.Context, adminID, token string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE admins SET fcm_token = $1, token_updated_at = NOW() WHERE id = $2", token, adminID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAdminNotFound
	}
	return nil
}
