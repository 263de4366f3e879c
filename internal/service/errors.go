package service

import "net/http"

// Коды ошибок бизнес-логики
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
)

// ServiceError — ошибка бизнес-логики с HTTP-семантикой.
// Транспортный слой переводит её в конверт {"status":"error", ...}.
type ServiceError struct {
	Code       string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationError — некорректные входные данные (400)
func NewValidationError(msg string) *ServiceError {
	return &ServiceError{Code: CodeValidation, StatusCode: http.StatusBadRequest, Message: msg}
}

// NewForbiddenError — у принципала нет прав на ресурс (403)
func NewForbiddenError(msg string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, StatusCode: http.StatusForbidden, Message: msg}
}

// NewNotFoundError — ресурс отсутствует или не принадлежит вызывающему (404)
func NewNotFoundError(msg string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, StatusCode: http.StatusNotFound, Message: msg}
}

// NewConflictError — дубликат уникального поля (409)
func NewConflictError(msg string) *ServiceError {
	return &ServiceError{Code: CodeConflict, StatusCode: http.StatusConflict, Message: msg}
}
