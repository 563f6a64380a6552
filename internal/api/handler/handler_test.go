package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"easyhire/backend/internal/api/middleware"
	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/service"
	"easyhire/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ApplicationService ──

type mockApplicationService struct {
	applyResult      *dto.ApplicationResponse
	applyErr         error
	updateStatusErr  error
	listForJobResult *dto.RosterResponse
	listForJobErr    error
	listForAppResult []dto.ApplicationResponse
	listForAppErr    error

	// 记录最近一次调用参数
	lastStatus   string
	lastCallerID string
}

func (m *mockApplicationService) Apply(_ context.Context, _ string, _ string) (*dto.ApplicationResponse, error) {
	return m.applyResult, m.applyErr
}
func (m *mockApplicationService) UpdateStatus(_ context.Context, _ string, status string, callerID string) error {
	m.lastStatus = status
	m.lastCallerID = callerID
	return m.updateStatusErr
}
func (m *mockApplicationService) ListForJob(_ context.Context, _ string, _ string) (*dto.RosterResponse, error) {
	return m.listForJobResult, m.listForJobErr
}
func (m *mockApplicationService) ListForApplicant(_ context.Context, _ string) ([]dto.ApplicationResponse, error) {
	return m.listForAppResult, m.listForAppErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRoster(_ context.Context, _ string, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock JobService ──

type mockJobService struct {
	createResult *dto.JobResponse
	createErr    error
	getResult    *dto.JobResponse
	getErr       error
	listResult   []dto.JobResponse
	listTotal    int64
	listErr      error
	mineResult   []dto.JobResponse
	mineErr      error
	updateResult *dto.JobResponse
	updateErr    error
	deleteErr    error
}

func (m *mockJobService) Create(_ context.Context, _ *dto.CreateJobRequest, _ string) (*dto.JobResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockJobService) GetByID(_ context.Context, _ string) (*dto.JobResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockJobService) List(_ context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, int, int, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return m.listResult, m.listTotal, page, pageSize, m.listErr
}
func (m *mockJobService) ListMine(_ context.Context, _ string) ([]dto.JobResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockJobService) Update(_ context.Context, _ string, _ *dto.UpdateJobRequest, _ string) (*dto.JobResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockJobService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock MessageService ──

type mockMessageService struct {
	sendResult *dto.MessageResponse
	sendErr    error
	listResult []dto.MessageResponse
	listErr    error
}

func (m *mockMessageService) Send(_ context.Context, _, _, _ string) (*dto.MessageResponse, error) {
	return m.sendResult, m.sendErr
}
func (m *mockMessageService) List(_ context.Context, _, _ string, _, _ int) ([]dto.MessageResponse, error) {
	return m.listResult, m.listErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// authInjector 模拟 JWT 中间件注入的上下文
func authInjector(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// ApplicationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestApplicationHandler_Apply_Success(t *testing.T) {
	mock := &mockApplicationService{
		applyResult: &dto.ApplicationResponse{ID: "app-1", Status: "pending", JobID: "job-1"},
	}
	h := NewApplicationHandler(mock, &mockExportService{})

	r := gin.New()
	r.POST("/jobs/:id/apply", authInjector("student-1", "student"), h.Apply)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jobs/job-1/apply", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestApplicationHandler_Apply_Duplicate(t *testing.T) {
	mock := &mockApplicationService{applyErr: service.ErrAlreadyApplied}
	h := NewApplicationHandler(mock, &mockExportService{})

	r := gin.New()
	r.POST("/jobs/:id/apply", authInjector("student-1", "student"), h.Apply)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jobs/job-1/apply", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

func TestApplicationHandler_Apply_JobNotFound(t *testing.T) {
	mock := &mockApplicationService{applyErr: service.ErrJobNotFound}
	h := NewApplicationHandler(mock, &mockExportService{})

	r := gin.New()
	r.POST("/jobs/:id/apply", authInjector("student-1", "student"), h.Apply)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jobs/no-such/apply", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestApplicationHandler_Apply_Unauthenticated(t *testing.T) {
	h := NewApplicationHandler(&mockApplicationService{}, &mockExportService{})

	r := gin.New()
	// 未注入 user_id，模拟中间件缺失
	r.POST("/jobs/:id/apply", h.Apply)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jobs/job-1/apply", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestApplicationHandler_UpdateStatus_Success(t *testing.T) {
	mock := &mockApplicationService{}
	h := NewApplicationHandler(mock, &mockExportService{})

	r := gin.New()
	r.PUT("/applications/:id/status", authInjector("recruiter-1", "recruiter"), h.UpdateStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/applications/app-1/status",
		jsonBody(dto.UpdateApplicationStatusRequest{Status: "accepted"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastStatus != "accepted" || mock.lastCallerID != "recruiter-1" {
		t.Errorf("Service 调用参数不符: status=%s caller=%s", mock.lastStatus, mock.lastCallerID)
	}
}

func TestApplicationHandler_UpdateStatus_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		svcErr   error
		wantHTTP int
		wantCode int
	}{
		{"not_found", service.ErrApplicationNotFound, http.StatusNotFound, 15001},
		{"invalid_status", service.ErrInvalidStatus, http.StatusBadRequest, 15003},
		{"finalized", service.ErrStatusFinalized, http.StatusConflict, 15004},
		{"not_owner", service.ErrNotJobOwner, http.StatusForbidden, 15005},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockApplicationService{updateStatusErr: tc.svcErr}
			h := NewApplicationHandler(mock, &mockExportService{})

			r := gin.New()
			r.PUT("/applications/:id/status", authInjector("recruiter-1", "recruiter"), h.UpdateStatus)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/applications/app-1/status",
				jsonBody(dto.UpdateApplicationStatusRequest{Status: "accepted"}))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantHTTP {
				t.Errorf("expected %d, got %d", tc.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tc.wantCode {
				t.Errorf("expected error code %d, got %d", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestApplicationHandler_UpdateStatus_MissingBody(t *testing.T) {
	h := NewApplicationHandler(&mockApplicationService{}, &mockExportService{})

	r := gin.New()
	r.PUT("/applications/:id/status", authInjector("recruiter-1", "recruiter"), h.UpdateStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/applications/app-1/status", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApplicationHandler_ExportRoster(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "applicants_job-1.xlsx",
	}
	h := NewApplicationHandler(&mockApplicationService{}, mock)

	r := gin.New()
	r.GET("/jobs/:id/applicants/export", authInjector("recruiter-1", "recruiter"), h.ExportRoster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jobs/job-1/applicants/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type 不符: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 头")
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("响应体应为导出文件内容")
	}
}

func TestApplicationHandler_ExportRoster_NoApplicants(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoApplicants}
	h := NewApplicationHandler(&mockApplicationService{}, mock)

	r := gin.New()
	r.GET("/jobs/:id/applicants/export", authInjector("recruiter-1", "recruiter"), h.ExportRoster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jobs/job-1/applicants/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 18001 {
		t.Errorf("expected error code 18001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// JobHandler Tests
// ═══════════════════════════════════════════════════════════

func TestJobHandler_ListJobs_Public(t *testing.T) {
	mock := &mockJobService{
		listResult: []dto.JobResponse{{ID: "job-1", Title: "Go 后端工程师"}},
		listTotal:  1,
	}
	h := NewJobHandler(mock)

	r := gin.New()
	r.GET("/jobs", h.ListJobs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jobs?keyword=go", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestJobHandler_ListJobs_BadPage(t *testing.T) {
	h := NewJobHandler(&mockJobService{})

	r := gin.New()
	r.GET("/jobs", h.ListJobs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jobs?page=0", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestJobHandler_DeleteJob_HasApplications(t *testing.T) {
	mock := &mockJobService{deleteErr: service.ErrJobHasApplications}
	h := NewJobHandler(mock)

	r := gin.New()
	r.DELETE("/jobs/:id", authInjector("recruiter-1", "recruiter"), h.DeleteJob)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/jobs/job-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestJobHandler_GetJob_NotFound(t *testing.T) {
	mock := &mockJobService{getErr: service.ErrJobNotFound}
	h := NewJobHandler(mock)

	r := gin.New()
	r.GET("/jobs/:id", h.GetJob)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jobs/no-such", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MessageHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMessageHandler_Send_NotParticipant(t *testing.T) {
	mock := &mockMessageService{sendErr: service.ErrNotParticipant}
	h := NewMessageHandler(mock)

	r := gin.New()
	r.POST("/applications/:id/messages", authInjector("stranger-1", "student"), h.Send)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/applications/app-1/messages",
		jsonBody(dto.SendMessageRequest{Body: "在吗"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

// stubRateLimiter 固定返回允许/拒绝结果的限流器
type stubRateLimiter struct {
	allowed bool
	calls   int
}

func (s *stubRateLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	s.calls++
	return s.allowed, nil
}

func TestMessageHandler_Send_RateLimited(t *testing.T) {
	mock := &mockMessageService{sendResult: &dto.MessageResponse{ID: "msg-1"}}
	h := NewMessageHandler(mock)
	limiter := &stubRateLimiter{allowed: false}

	r := gin.New()
	r.POST("/applications/:id/messages",
		middleware.RateLimit(limiter, 30, time.Minute),
		authInjector("student-1", "student"), h.Send)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/applications/app-1/messages",
		jsonBody(dto.SendMessageRequest{Body: "在吗"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10004 {
		t.Errorf("expected error code 10004, got %d", resp.Code)
	}
	if limiter.calls != 1 {
		t.Errorf("expected limiter called once, got %d", limiter.calls)
	}
}

func TestMessageHandler_Send_RateLimitAllowed(t *testing.T) {
	mock := &mockMessageService{sendResult: &dto.MessageResponse{ID: "msg-1", Body: "在吗"}}
	h := NewMessageHandler(mock)

	r := gin.New()
	r.POST("/applications/:id/messages",
		middleware.RateLimit(&stubRateLimiter{allowed: true}, 30, time.Minute),
		authInjector("student-1", "student"), h.Send)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/applications/app-1/messages",
		jsonBody(dto.SendMessageRequest{Body: "在吗"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestMessageHandler_Send_EmptyBody(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	r := gin.New()
	r.POST("/applications/:id/messages", authInjector("student-1", "student"), h.Send)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/applications/app-1/messages",
		jsonBody(dto.SendMessageRequest{Body: ""}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
