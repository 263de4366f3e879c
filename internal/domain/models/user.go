package models

import "time"

// User — профиль пользователя. Идентификатор приходит от внешнего
// сервиса аутентификации (principal id), мы его не генерируем.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PhoneNumbers []string  `json:"phoneNumbers,omitempty"`
	FCMToken     string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
