package dto

// ── 消息模块请求 ──

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// MessageListRequest 消息列表查询参数
type MessageListRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// ── 消息模块响应 ──

// MessageResponse 消息响应
type MessageResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	SenderID      string `json:"sender_id"`
	SenderName    string `json:"sender_name,omitempty"`
	Body          string `json:"body"`
	CreatedAt     string `json:"created_at"`
}
