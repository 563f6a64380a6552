package model

// 用户角色
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// User 用户表 — 对应 users
// 求职者（student）与招聘者（recruiter）共用一张表，档案字段仅求职者使用
type User struct {
	UserID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string      `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string      `gorm:"type:varchar(20);not null;default:''"           json:"phone"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string      `gorm:"type:varchar(20);not null"                      json:"role"`
	Bio          string      `gorm:"type:text;not null;default:''"                  json:"bio"`
	Skills       StringArray `gorm:"type:text[]"                                    json:"skills"`
	ResumePath   string      `gorm:"type:varchar(512);not null;default:''"          json:"resume_path"`
	ResumeName   string      `gorm:"type:varchar(255);not null;default:''"          json:"resume_name"`
	PhotoPath    string      `gorm:"type:varchar(512);not null;default:''"          json:"photo_path"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
