package handlers

import (
	"GrandLine/internal/config"
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MessageHandler обрабатывает отправку, выборку и удаление сообщений.
type MessageHandler struct {
	Messages *service.MessageService
	Files    *storage.FileStore
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

func NewMessageHandler(messages *service.MessageService, files *storage.FileStore, logger *zap.SugaredLogger, cfg *config.Config) *MessageHandler {
	return &MessageHandler{Messages: messages, Files: files, Logger: logger, Config: cfg}
}

// Send — отправка голосового сообщения. multipart/form-data:
// sender_id, receiver_id, audio_file обязательны; text_note и media_file
// опциональны. Порядок проверок: поля → существование пользователей →
// аудио-файл; файлы пишутся на диск только после всех проверок.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.Logger.Warnw("Send: invalid form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	senderRaw := r.FormValue("sender_id")
	receiverRaw := r.FormValue("receiver_id")
	if senderRaw == "" || receiverRaw == "" {
		writeError(w, http.StatusBadRequest, "missing sender_id or receiver_id")
		return
	}
	senderID, err := strconv.ParseInt(senderRaw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "sender_id and receiver_id must be integers")
		return
	}
	receiverID, err := strconv.ParseInt(receiverRaw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "sender_id and receiver_id must be integers")
		return
	}

	if err := h.Messages.ValidateParticipants(r.Context(), senderID, receiverID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "sender_id or receiver_id is not a known user")
			return
		}
		h.Logger.Errorw("Send: participant check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Аудио обязательно
	audioFile, audioHeader, err := r.FormFile("audio_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer audioFile.Close()
	if audioHeader.Filename == "" || !storage.AllowedFile(audioHeader.Filename) {
		writeError(w, http.StatusBadRequest, "invalid audio file or missing filename")
		return
	}

	audio, err := h.Files.SaveUpload(audioFile, audioHeader, storage.SubfolderAudios)
	if err != nil {
		h.Logger.Errorw("Send: failed to store audio", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store audio file")
		return
	}

	// Media опционально; неподходящий файл игнорируется целиком —
	// частично заполненных media-полей не бывает.
	var media *storage.SavedFile
	if mediaFile, mediaHeader, ferr := r.FormFile("media_file"); ferr == nil {
		defer mediaFile.Close()
		if mediaHeader.Filename != "" && storage.AllowedFile(mediaHeader.Filename) {
			saved, saveErr := h.Files.SaveUpload(mediaFile, mediaHeader, storage.SubfolderMedia)
			if saveErr != nil {
				h.Logger.Errorw("Send: failed to store media", "error", saveErr)
				writeError(w, http.StatusInternalServerError, "failed to store media file")
				return
			}
			media = saved
		} else {
			h.Logger.Debugw("Send: media file ignored", "filename", mediaHeader.Filename)
		}
	}

	var textNote *string
	if vals, ok := r.Form["text_note"]; ok && len(vals) > 0 {
		textNote = &vals[0]
	}

	msg, err := h.Messages.Send(r.Context(), service.SendInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		TextNote:   textNote,
		Audio:      *audio,
		Media:      media,
	})
	if err != nil {
		h.Logger.Errorw("Send: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "message sent successfully",
		"message_data": messageToDTO(msg, h.Config.ServerURL),
	})
}

// Chat возвращает переписку между двумя пользователями,
// отсортированную по timestamp по возрастанию.
func (h *MessageHandler) Chat(w http.ResponseWriter, r *http.Request) {
	id1, err1 := strconv.ParseInt(chi.URLParam(r, "id1"), 10, 64)
	id2, err2 := strconv.ParseInt(chi.URLParam(r, "id2"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	msgs, err := h.Messages.Conversation(r.Context(), id1, id2)
	if err != nil {
		h.Logger.Errorw("Chat: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	dtos := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		dtos = append(dtos, messageToDTO(&msgs[i], h.Config.ServerURL))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Delete удаляет сообщение и best-effort его файлы на диске.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	if err := h.Messages.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, "message not found")
			return
		}
		h.Logger.Errorw("Delete: service error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("message %d deleted successfully", id),
	})
}
