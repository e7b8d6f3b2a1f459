package model

import "time"

// User — серверная модель пользователя.
type User struct {
	ID int64 `gorm:"primaryKey"`

	Email        string `gorm:"size:120;uniqueIndex;not null"`
	Username     string `gorm:"size:80;not null"`
	PasswordHash string `gorm:"size:256;not null"`

	// Фото профиля: копия на диске и опциональный BLOB
	ProfilePicture Attachment `gorm:"embedded;embeddedPrefix:profile_picture_"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string { return "user" }
