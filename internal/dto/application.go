package dto

// ── 申请模块请求 ──

// UpdateApplicationStatusRequest 更新申请状态请求
// 仅允许 accepted / rejected，状态域校验在 Service 层完成以便返回业务错误
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ── 申请模块响应 ──

// ApplicationResponse 申请记录响应（求职者视角：带职位与公司摘要）
type ApplicationResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`

	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name,omitempty"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
}

// ApplicantResponse 申请人档案摘要（招聘者视角）
type ApplicantResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills,omitempty"`
	ResumeURL  string   `json:"resume_url,omitempty"`
	ResumeName string   `json:"resume_name,omitempty"`
}

// RosterItemResponse 申请花名册条目（申请 + 申请人档案）
type RosterItemResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	Applicant ApplicantResponse `json:"applicant"`
}

// RosterResponse 某职位的申请花名册
type RosterResponse struct {
	JobID        string               `json:"job_id"`
	JobTitle     string               `json:"job_title"`
	Applications []RosterItemResponse `json:"applications"`
}
