package dto

// ── 用户模块请求 ──

// UpdateProfileRequest 更新个人档案请求（字段均可选）
type UpdateProfileRequest struct {
	Name   *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Phone  *string   `json:"phone" binding:"omitempty,max=20"`
	Bio    *string   `json:"bio" binding:"omitempty,max=2000"`
	Skills *[]string `json:"skills" binding:"omitempty,max=50,dive,min=1,max=50"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UserDetailResponse 用户详细信息（GET /auth/me）
type UserDetailResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Role       string   `json:"role"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	ResumeURL  string   `json:"resume_url,omitempty"`
	ResumeName string   `json:"resume_name,omitempty"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	ResumeURL       string   `json:"resume_url"`
	ResumeName      string   `json:"resume_name"`
	DetectedSkills  []string `json:"detected_skills"`  // 本次解析新识别到的技能
	ExtractedChars  int      `json:"extracted_chars"`  // 解析出的文本长度，0 表示解析失败
}
