package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// User — представление пользователя, как его отдаёт сервер.
type User struct {
	ID                int64   `json:"id"`
	Email             string  `json:"email"`
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CreatedAt         string  `json:"created_at"`
}

// Message — представление сообщения, как его отдаёт сервер.
type Message struct {
	ID         int64   `json:"id"`
	SenderID   int64   `json:"sender_id"`
	ReceiverID int64   `json:"receiver_id"`
	TextNote   *string `json:"text_note"`
	AudioURL   string  `json:"audio_url"`
	MediaURL   *string `json:"media_url"`
	Timestamp  string  `json:"timestamp"`
}

// ErrorMessage достаёт человекочитаемое сообщение из тела ошибки сервера.
func ErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(bytes.TrimSpace(body))
}

// PostJSON sends a JSON POST request and returns the response with its body.
func PostJSON(ctx context.Context, url string, payload any) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// FileArg — файл для multipart-запроса: имя поля и путь на диске.
type FileArg struct {
	Field string
	Path  string
}

// PostMultipart sends a multipart/form-data POST with fields and local files.
func PostMultipart(ctx context.Context, url string, fields map[string]string, files ...FileArg) (*http.Response, []byte, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, nil, err
		}
	}
	for _, fa := range files {
		f, err := os.Open(fa.Path)
		if err != nil {
			return nil, nil, err
		}
		part, err := w.CreateFormFile(fa.Field, filepath.Base(fa.Path))
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, nil, err
		}
		f.Close()
	}
	if err := w.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// Get sends a GET request and returns the response with its body.
func Get(ctx context.Context, url string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// Delete sends a DELETE request and returns the response with its body.
func Delete(ctx context.Context, url string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}
