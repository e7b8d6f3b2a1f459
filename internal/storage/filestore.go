package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Подпапки внутри корня загрузок.
const (
	SubfolderProfiles = "profiles"
	SubfolderAudios   = "audios"
	SubfolderMedia    = "media"
)

// allowedExtensions — разрешённые расширения загружаемых файлов
// (аудио, видео, изображения).
var allowedExtensions = map[string]struct{}{
	"mp3": {}, "m4a": {}, "aac": {}, "wav": {}, "ogg": {},
	"mp4": {}, "avi": {}, "mov": {},
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
}

// AllowedFile — у имени файла есть расширение и оно из разрешённого набора.
func AllowedFile(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitizeFilename убирает компоненты пути и небезопасные символы
// из клиентского имени файла.
func sanitizeFilename(name string) string {
	// клиент может прислать windows-путь
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

// SavedFile — результат сохранения загрузки: путь на диске, сгенерированное
// имя, mimetype и (если включено хранение в БД) прочитанные байты.
type SavedFile struct {
	Path     string
	Filename string
	Mimetype string
	Data     []byte
}

// FileStore сохраняет загруженные файлы в content-type-специфичные подпапки
// под общим корнем. Флаг keepBlob фиксируется при создании.
type FileStore struct {
	root     string
	keepBlob bool
	logger   *zap.SugaredLogger
}

func NewFileStore(root string, keepBlob bool, logger *zap.SugaredLogger) *FileStore {
	return &FileStore{root: root, keepBlob: keepBlob, logger: logger}
}

// Root возвращает корень дерева загрузок.
func (s *FileStore) Root() string { return s.root }

// SaveUpload пишет файл целиком в <root>/<subfolder>/<uuid>_<sanitized name>
// и возвращает метаданные копии. Расширение НЕ проверяется — вызывающий
// обязан пройти AllowedFile заранее. При keepBlob возвращает и сами байты.
func (s *FileStore) SaveUpload(file multipart.File, header *multipart.FileHeader, subfolder string) (*SavedFile, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	name := uuid.NewString() + "_" + sanitizeFilename(header.Filename)
	dir := filepath.Join(s.root, subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	mt := header.Header.Get("Content-Type")
	if mt == "" {
		mt = mimetype.Detect(data).String()
	}

	saved := &SavedFile{Path: path, Filename: name, Mimetype: mt}
	if s.keepBlob {
		saved.Data = data
	}
	return saved, nil
}

// Remove удаляет копию на диске best-effort: ошибка файловой системы
// логируется и не возвращается, логическое удаление не блокируется.
func (s *FileStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("failed to remove file from disk", "path", path, "error", err)
	}
}
