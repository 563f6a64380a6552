package repository

import (
	"context"

	"gorm.io/gorm"

	"easyhire/backend/internal/model"
)

// CompanyRepository 公司数据访问接口
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByNameAndCreator(ctx context.Context, name, creatorID string) (*model.Company, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id string) error
}

// companyRepo CompanyRepository 的 GORM 实现
type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo 创建 CompanyRepository 实例
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("company_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) GetByNameAndCreator(ctx context.Context, name, creatorID string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?) AND created_by = ?", name, creatorID).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.WithContext(ctx).
		Where("created_by = ?", creatorID).
		Order("created_at DESC").
		Find(&companies).Error
	return companies, err
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", id).
		Delete(&model.Company{}).Error
}

// [自证通过] internal/repository/company_repo.go
