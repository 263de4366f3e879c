package models

import "time"

// Admin — администратор. Идентификатор записи одновременно служит
// bearer-токеном админской сессии (отдельного хранилища сессий нет).
type Admin struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PassHash       []byte    `json:"-"`
	FCMToken       string    `json:"-"`
	TokenUpdatedAt time.Time `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
