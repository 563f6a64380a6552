package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"easyhire/backend/internal/model"
	pkgerrors "easyhire/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmailAndRole(_ context.Context, email, role string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) && u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		company.CompanyID = fmt.Sprintf("company-%d", len(m.companies)+1)
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByNameAndCreator(_ context.Context, name, creatorID string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.Name == name && c.CreatedBy == creatorID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Company, error) {
	var result []model.Company
	for _, c := range m.companies {
		if c.CreatedBy == creatorID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string) error {
	delete(m.companies, id)
	return nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs      map[string]*model.Job
	order     []string // 插入顺序
	companies *mockCompanyRepo
}

func newMockJobRepo(companies *mockCompanyRepo) *mockJobRepo {
	return &mockJobRepo{jobs: make(map[string]*model.Job), companies: companies}
}

// attachCompany 模拟 Company 预加载
func (m *mockJobRepo) attachCompany(job *model.Job) *model.Job {
	j := *job
	if c, ok := m.companies.companies[j.CompanyID]; ok {
		j.Company = c
	}
	return &j
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.JobID == "" {
		job.JobID = fmt.Sprintf("job-%d", len(m.jobs)+1)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	m.jobs[job.JobID] = job
	m.order = append(m.order, job.JobID)
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	if j, ok := m.jobs[id]; ok {
		return m.attachCompany(j), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Job, int64, error) {
	kw := strings.ToLower(keyword)
	var matched []model.Job
	// 按创建时间倒序
	for i := len(m.order) - 1; i >= 0; i-- {
		j := m.attachCompany(m.jobs[m.order[i]])
		if kw != "" && !m.matchKeyword(j, kw) {
			continue
		}
		matched = append(matched, *j)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockJobRepo) matchKeyword(j *model.Job, kw string) bool {
	fields := []string{j.Title, j.Description, j.Location, j.JobType}
	if j.Company != nil {
		fields = append(fields, j.Company.Name)
	}
	fields = append(fields, j.Requirements...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), kw) {
			return true
		}
	}
	return false
}

func (m *mockJobRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Job, error) {
	var result []model.Job
	for i := len(m.order) - 1; i >= 0; i-- {
		j := m.jobs[m.order[i]]
		if j.CreatedBy == creatorID {
			result = append(result, *m.attachCompany(j))
		}
	}
	return result, nil
}

func (m *mockJobRepo) CountByCompany(_ context.Context, companyID string) (int64, error) {
	var count int64
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	m.jobs[job.JobID] = job
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id string) error {
	delete(m.jobs, id)
	for i, jid := range m.order {
		if jid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock ApplicationRepository ──
//
// 行为与真实实现对齐：
//   - Create 是 insert-if-absent，(job_id, applicant_id) 已存在时返回 ErrDuplicateKey 且不写入
//   - UpdateStatusFromPending 是条件更新，未命中 pending 行时返回 ErrOptimisticLock

type mockApplicationRepo struct {
	apps  map[string]*model.Application
	order []string        // 插入顺序
	pairs map[string]bool // "jobID|applicantID" 唯一索引
	jobs  *mockJobRepo
	users *mockUserRepo
}

func newMockApplicationRepo(jobs *mockJobRepo, users *mockUserRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:  make(map[string]*model.Application),
		pairs: make(map[string]bool),
		jobs:  jobs,
		users: users,
	}
}

func (m *mockApplicationRepo) attach(app *model.Application) *model.Application {
	a := *app
	if j, ok := m.jobs.jobs[a.JobID]; ok {
		a.Job = m.jobs.attachCompany(j)
	}
	if u, ok := m.users.users[a.ApplicantID]; ok {
		a.Applicant = u
	}
	return &a
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	key := app.JobID + "|" + app.ApplicantID
	if m.pairs[key] {
		return pkgerrors.ErrDuplicateKey
	}
	if app.ApplicationID == "" {
		app.ApplicationID = fmt.Sprintf("app-%d", len(m.apps)+1)
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	m.pairs[key] = true
	m.apps[app.ApplicationID] = app
	m.order = append(m.order, app.ApplicationID)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		return m.attach(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) UpdateStatusFromPending(_ context.Context, id, status string) error {
	a, ok := m.apps[id]
	if !ok || a.Status != model.ApplicationStatusPending {
		return pkgerrors.ErrOptimisticLock
	}
	a.Status = status
	return nil
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID string) ([]model.Application, error) {
	var result []model.Application
	for i := len(m.order) - 1; i >= 0; i-- {
		a := m.apps[m.order[i]]
		if a.JobID == jobID {
			result = append(result, *m.attach(a))
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]model.Application, error) {
	var result []model.Application
	for i := len(m.order) - 1; i >= 0; i-- {
		a := m.apps[m.order[i]]
		if a.ApplicantID == applicantID {
			result = append(result, *m.attach(a))
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) CountByJob(_ context.Context, jobID string) (int64, error) {
	var count int64
	for _, a := range m.apps {
		if a.JobID == jobID {
			count++
		}
	}
	return count, nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	msgs  []*model.Message
	users *mockUserRepo
}

func newMockMessageRepo(users *mockUserRepo) *mockMessageRepo {
	return &mockMessageRepo{users: users}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("msg-%d", len(m.msgs)+1)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mockMessageRepo) ListByApplication(_ context.Context, applicationID string, limit, offset int) ([]model.Message, error) {
	var matched []model.Message
	for _, msg := range m.msgs {
		if msg.ApplicationID != applicationID {
			continue
		}
		cp := *msg
		if u, ok := m.users.users[cp.SenderID]; ok {
			cp.Sender = u
		}
		matched = append(matched, cp)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// [自证通过] internal/service/mock_repos_test.go
