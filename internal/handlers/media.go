package handlers

import (
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MediaHandler отдаёт вложения: по имени файла с диска и по id сообщения
// (BLOB из БД или копия на диске, прозрачно для клиента).
type MediaHandler struct {
	Messages *service.MessageService
	Files    *storage.FileStore
	Logger   *zap.SugaredLogger
}

func NewMediaHandler(messages *service.MessageService, files *storage.FileStore, logger *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{Messages: messages, Files: files, Logger: logger}
}

// ServeUpload отдаёт файл из дерева загрузок по относительному пути
// (включая подпапку). Выход за пределы корня обрезается.
func (h *MediaHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	// нормализуем и отрезаем ".." — путь всегда остаётся под корнем
	rel = path.Clean("/" + rel)[1:]
	if rel == "" {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	full := filepath.Join(h.Files.Root(), filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	http.ServeFile(w, r, full)
}

// GetAudio отдаёт аудио-вложение сообщения.
func (h *MediaHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	h.serveAttachment(w, r, service.SelectorAudio)
}

// GetMedia отдаёт media-вложение сообщения.
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	h.serveAttachment(w, r, service.SelectorMedia)
}

func (h *MediaHandler) serveAttachment(w http.ResponseWriter, r *http.Request, sel service.AttachmentSelector) {
	id, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	att, err := h.Messages.Attachment(r.Context(), id, sel)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "message not found")
		case errors.Is(err, service.ErrAttachmentNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("%s file not available", sel))
		default:
			h.Logger.Errorw("serveAttachment: service error", "id", id, "selector", sel, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	// BLOB из БД — авторитетный источник, если он есть
	if att.Data != nil {
		w.Header().Set("Content-Type", att.Mimetype)
		if att.Filename != "" {
			w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", att.Filename))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(att.Data)
		return
	}

	if att.Mimetype != "" {
		w.Header().Set("Content-Type", att.Mimetype)
	}
	http.ServeFile(w, r, att.Path)
}
