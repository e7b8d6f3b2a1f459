package service

import (
	"GrandLine/internal/model"
	"GrandLine/internal/repo"
	"GrandLine/internal/storage"
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Селектор вложения сообщения.
type AttachmentSelector string

const (
	SelectorAudio AttachmentSelector = "audio"
	SelectorMedia AttachmentSelector = "media"
)

// MessageService инкапсулирует отправку, выборку и удаление сообщений
// и отдачу их вложений. storeInDB фиксируется при создании.
type MessageService struct {
	messages  repo.MessageRepository
	users     repo.UserRepository
	files     *storage.FileStore
	storeInDB bool
	logger    *zap.SugaredLogger
}

func NewMessageService(
	messages repo.MessageRepository,
	users repo.UserRepository,
	files *storage.FileStore,
	storeInDB bool,
	logger *zap.SugaredLogger,
) *MessageService {
	return &MessageService{
		messages:  messages,
		users:     users,
		files:     files,
		storeInDB: storeInDB,
		logger:    logger,
	}
}

// ValidateParticipants проверяет, что оба пользователя существуют.
// Вызывается ДО записи файлов на диск, чтобы не плодить сирот.
func (s *MessageService) ValidateParticipants(ctx context.Context, senderID, receiverID int64) error {
	for _, id := range []int64{senderID, receiverID} {
		if _, err := s.users.GetUserByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
	}
	return nil
}

// SendInput — вход отправки. Файлы уже сохранены на диск хелпером storage:
// Audio обязателен, Media опционален (nil — все четыре media-поля пусты).
type SendInput struct {
	SenderID   int64
	ReceiverID int64
	TextNote   *string
	Audio      storage.SavedFile
	Media      *storage.SavedFile
}

// Send создаёт строку сообщения.
func (s *MessageService) Send(ctx context.Context, in SendInput) (*model.Message, error) {
	msg := &model.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		TextNote:   in.TextNote,
		Audio: model.Attachment{
			Path:     in.Audio.Path,
			Filename: in.Audio.Filename,
			Mimetype: in.Audio.Mimetype,
			Data:     in.Audio.Data,
		},
	}
	if in.Media != nil {
		msg.Media = model.Attachment{
			Path:     in.Media.Path,
			Filename: in.Media.Filename,
			Mimetype: in.Media.Mimetype,
			Data:     in.Media.Data,
		}
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversation возвращает переписку (A,B)∪(B,A) по возрастанию timestamp.
func (s *MessageService) Conversation(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	return s.messages.GetConversation(ctx, userA, userB)
}

// Delete удаляет сообщение: best-effort чистка файлов на диске,
// затем удаление строки. Ошибки файловой системы логируются и глотаются.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	s.files.Remove(msg.Audio.Path)
	s.files.Remove(msg.Media.Path)

	return s.messages.Delete(ctx, id)
}

// AttachmentContent — содержимое вложения для отдачи по HTTP: либо байты
// из BLOB (Data != nil), либо путь к копии на диске.
type AttachmentContent struct {
	Data     []byte
	Path     string
	Filename string
	Mimetype string
}

// Attachment реализует порядок отдачи вложения: BLOB (если включено хранение
// в БД и байты есть) авторитетнее копии на диске; иначе диск; иначе NotFound.
func (s *MessageService) Attachment(ctx context.Context, messageID int64, sel AttachmentSelector) (*AttachmentContent, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	var att model.Attachment
	switch sel {
	case SelectorAudio:
		att = msg.Audio
	case SelectorMedia:
		att = msg.Media
	default:
		return nil, ErrAttachmentNotFound
	}

	if s.storeInDB && att.HasBlob() {
		mt := att.Mimetype
		if mt == "" {
			mt = "application/octet-stream"
		}
		return &AttachmentContent{Data: att.Data, Filename: att.Filename, Mimetype: mt}, nil
	}

	if att.Path != "" {
		if _, err := os.Stat(att.Path); err == nil {
			return &AttachmentContent{Path: att.Path, Filename: att.Filename, Mimetype: att.Mimetype}, nil
		}
	}

	return nil, ErrAttachmentNotFound
}
