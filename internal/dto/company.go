package dto

// ── 公司模块请求 ──

// CreateCompanyRequest 创建公司请求
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Website     string `json:"website" binding:"omitempty,max=255"`
	Location    string `json:"location" binding:"omitempty,max=255"`
}

// UpdateCompanyRequest 更新公司请求（字段均可选）
type UpdateCompanyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Website     *string `json:"website" binding:"omitempty,max=255"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
}

// ── 公司模块响应 ──

// CompanyResponse 公司信息响应
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	LogoURL     string `json:"logo_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}
