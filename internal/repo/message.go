package repo

import (
	"GrandLine/internal/model"
	"context"

	"gorm.io/gorm"
)

// MessageRepository — контракт доступа к Message для слоя сервиса.
type MessageRepository interface {
	// Create вставляет сообщение и проставляет ему ID и timestamp.
	Create(ctx context.Context, msg *model.Message) error

	// GetByID возвращает сообщение по ID или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Message, error)

	// GetConversation возвращает переписку между двумя пользователями
	// в обе стороны, отсортированную по timestamp по возрастанию.
	GetConversation(ctx context.Context, userA, userB int64) ([]model.Message, error)

	// Delete удаляет строку сообщения.
	Delete(ctx context.Context, id int64) error
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepository создаёт реализацию репозитория для Message.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) GetConversation(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, id).Error
}
