package model

import "time"

// Message — голосовое сообщение между двумя пользователями.
// Аудио обязательно, media (картинка/видео) опционально.
type Message struct {
	ID int64 `gorm:"primaryKey"`

	SenderID   int64 `gorm:"not null;index"`
	ReceiverID int64 `gorm:"not null;index"`

	// Связи
	Sender   *User `gorm:"foreignKey:SenderID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`

	Audio Attachment `gorm:"embedded;embeddedPrefix:audio_"`
	Media Attachment `gorm:"embedded;embeddedPrefix:media_"`

	TextNote *string `gorm:"type:text"`

	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string { return "audio_message" }
