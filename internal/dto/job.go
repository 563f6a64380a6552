package dto

// ── 职位模块请求 ──

// CreateJobRequest 发布职位请求
type CreateJobRequest struct {
	Title           string   `json:"title" binding:"required,min=2,max=200"`
	Description     string   `json:"description" binding:"required,max=10000"`
	Requirements    []string `json:"requirements" binding:"omitempty,max=50,dive,min=1,max=200"`
	Salary          string   `json:"salary" binding:"omitempty,max=100"`
	Location        string   `json:"location" binding:"omitempty,max=255"`
	JobType         string   `json:"job_type" binding:"omitempty,max=50"`
	ExperienceLevel string   `json:"experience_level" binding:"omitempty,max=50"`
	Positions       int      `json:"positions" binding:"required,min=1"`
	CompanyID       string   `json:"company_id" binding:"required,uuid"`
}

// UpdateJobRequest 更新职位请求（字段均可选，公司归属不可变更）
type UpdateJobRequest struct {
	Title           *string   `json:"title" binding:"omitempty,min=2,max=200"`
	Description     *string   `json:"description" binding:"omitempty,max=10000"`
	Requirements    *[]string `json:"requirements" binding:"omitempty,max=50,dive,min=1,max=200"`
	Salary          *string   `json:"salary" binding:"omitempty,max=100"`
	Location        *string   `json:"location" binding:"omitempty,max=255"`
	JobType         *string   `json:"job_type" binding:"omitempty,max=50"`
	ExperienceLevel *string   `json:"experience_level" binding:"omitempty,max=50"`
	Positions       *int      `json:"positions" binding:"omitempty,min=1"`
}

// JobListRequest 职位列表查询参数
type JobListRequest struct {
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ── 职位模块响应 ──

// JobResponse 职位信息响应
type JobResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	Salary          string           `json:"salary"`
	Location        string           `json:"location"`
	JobType         string           `json:"job_type"`
	ExperienceLevel string           `json:"experience_level"`
	Positions       int              `json:"positions"`
	Company         *CompanyResponse `json:"company,omitempty"`
	CreatedAt       string           `json:"created_at"`
}
