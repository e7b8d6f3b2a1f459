package handlers

import (
	"GrandLine/internal/model"
	"GrandLine/internal/storage"
	"fmt"
	"path"
	"path/filepath"
	"time"
)

// UserDTO — публичное представление пользователя: без хеша пароля и байтов BLOB.
type UserDTO struct {
	ID                int64   `json:"id"`
	Email             string  `json:"email"`
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CreatedAt         string  `json:"created_at"`
}

// MessageDTO — публичное представление сообщения. MediaURL равен null,
// если media-вложения нет.
type MessageDTO struct {
	ID         int64   `json:"id"`
	SenderID   int64   `json:"sender_id"`
	ReceiverID int64   `json:"receiver_id"`
	TextNote   *string `json:"text_note"`
	AudioURL   string  `json:"audio_url"`
	MediaURL   *string `json:"media_url"`
	Timestamp  string  `json:"timestamp"`
}

// userToDTO строит публичное представление. URL картинки абсолютный и
// включает подпапку profiles, чтобы разрешался раздачей с диска.
func userToDTO(u *model.User, serverURL string) UserDTO {
	var picURL *string
	if u.ProfilePicture.Path != "" {
		url := serverURL + "/uploads/" + path.Join(storage.SubfolderProfiles, filepath.Base(u.ProfilePicture.Path))
		picURL = &url
	}
	return UserDTO{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		ProfilePictureURL: picURL,
		CreatedAt:         u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func messageToDTO(m *model.Message, serverURL string) MessageDTO {
	var mediaURL *string
	if m.Media.Present() {
		url := fmt.Sprintf("%s/media/media/%d", serverURL, m.ID)
		mediaURL = &url
	}
	return MessageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		TextNote:   m.TextNote,
		AudioURL:   fmt.Sprintf("%s/media/audio/%d", serverURL, m.ID),
		MediaURL:   mediaURL,
		Timestamp:  m.Timestamp.UTC().Format(time.RFC3339),
	}
}
