package service

import "errors"

// Ошибки бизнес-слоя; хендлеры сопоставляют их HTTP-статусам через errors.Is.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrAttachmentNotFound = errors.New("attachment not available")
)
