package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/model"
	"easyhire/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestCompanyService(t *testing.T) (CompanyService, *repository.Repository) {
	t.Helper()

	userRepo := newMockUserRepo()
	companyRepo := newMockCompanyRepo()
	jobRepo := newMockJobRepo(companyRepo)
	repo := &repository.Repository{
		User:        userRepo,
		Company:     companyRepo,
		Job:         jobRepo,
		Application: newMockApplicationRepo(jobRepo, userRepo),
		Message:     newMockMessageRepo(userRepo),
	}
	return NewCompanyService(repo, zap.NewNop()), repo
}

// ── Create 测试 ──

func TestCompanyService_Create_Success(t *testing.T) {
	svc, _ := setupTestCompanyService(t)

	result, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{
		Name:     "云启科技",
		Website:  "https://yunqi.example.com",
		Location: "杭州",
	}, "recruiter-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "云启科技" || result.Location != "杭州" {
		t.Errorf("公司信息不符: %+v", result)
	}
}

func TestCompanyService_Create_NameTaken(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1"); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 同一招聘者重名被拒
	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1"); !errors.Is(err, ErrCompanyNameTaken) {
		t.Errorf("期望 ErrCompanyNameTaken，实际: %v", err)
	}

	// 不同招聘者可以创建同名公司
	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-2"); err != nil {
		t.Errorf("不同招聘者创建同名公司应成功: %v", err)
	}
}

// ── GetByID / ListMine 测试 ──

func TestCompanyService_GetByID_AccessControl(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	company, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if _, err := svc.GetByID(ctx, company.ID, "recruiter-1"); err != nil {
		t.Errorf("创建者查询应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, company.ID, "recruiter-2"); !errors.Is(err, ErrCompanyAccessDenied) {
		t.Errorf("期望 ErrCompanyAccessDenied，实际: %v", err)
	}
	if _, err := svc.GetByID(ctx, "no-such-company", "recruiter-1"); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("期望 ErrCompanyNotFound，实际: %v", err)
	}
}

func TestCompanyService_ListMine(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "公司A"}, "recruiter-1"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "公司B"}, "recruiter-1"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "别人的公司"}, "recruiter-2"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.ListMine(ctx, "recruiter-1")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("期望 2 家公司，实际=%d", len(result))
	}
}

// ── Update 测试 ──

func TestCompanyService_Update_Success(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	company, _ := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1")

	newLocation := "上海"
	result, err := svc.Update(ctx, company.ID, &dto.UpdateCompanyRequest{Location: &newLocation}, "recruiter-1")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Location != "上海" || result.Name != "云启科技" {
		t.Errorf("更新结果不符: %+v", result)
	}
}

func TestCompanyService_Update_RenameToTakenName(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "公司A"}, "recruiter-1"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	companyB, _ := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "公司B"}, "recruiter-1")

	taken := "公司A"
	if _, err := svc.Update(ctx, companyB.ID, &dto.UpdateCompanyRequest{Name: &taken}, "recruiter-1"); !errors.Is(err, ErrCompanyNameTaken) {
		t.Errorf("期望 ErrCompanyNameTaken，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestCompanyService_Delete_RefusedWhenHasJobs(t *testing.T) {
	svc, repo := setupTestCompanyService(t)
	ctx := context.Background()

	company, _ := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1")

	err := repo.Job.Create(ctx, &model.Job{
		Title:     "Go 后端工程师",
		CompanyID: company.ID,
		CreatedBy: "recruiter-1",
	})
	if err != nil {
		t.Fatalf("创建职位失败: %v", err)
	}

	if err := svc.Delete(ctx, company.ID, "recruiter-1"); !errors.Is(err, ErrCompanyHasJobs) {
		t.Errorf("期望 ErrCompanyHasJobs，实际: %v", err)
	}
}

func TestCompanyService_Delete_Success(t *testing.T) {
	svc, _ := setupTestCompanyService(t)
	ctx := context.Background()

	company, _ := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "云启科技"}, "recruiter-1")

	if err := svc.Delete(ctx, company.ID, "recruiter-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, company.ID, "recruiter-1"); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("删除后期望 ErrCompanyNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/company_service_test.go
