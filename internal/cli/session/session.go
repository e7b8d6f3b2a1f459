package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session — локально запомненная личность после login. Сервер не выдаёт
// токенов: id из ответа просто переиспользуется в последующих вызовах.
type Session struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ErrNoSession — сессии нет (login ещё не выполнялся или была сброшена).
var ErrNoSession = errors.New("not logged in")

// FileStore — файловое хранилище сессии CLI.
type FileStore struct {
	Path string
}

// Save сохраняет сессию в файл.
func (s FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

// Load читает сохранённую сессию.
func (s FileStore) Load() (*Session, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	if sess.UserID == 0 {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear удаляет файл сессии; отсутствие файла — не ошибка.
func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
