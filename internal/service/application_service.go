package service

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"jobboard-api/internal/core/storage"
	"jobboard-api/internal/domain"
	"jobboard-api/pkg/utils"
)

const maxCoverLetterRunes = 200

type ApplicationService struct {
	apps  domain.ApplicationRepository
	jobs  domain.JobRepository
	store storage.ResumeStore
}

func NewApplicationService(apps domain.ApplicationRepository, jobs domain.JobRepository, store storage.ResumeStore) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, store: store}
}

// ResumeUpload handler 层从 multipart 取出的简历文件
type ResumeUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// MyApplicationRow 申请人视角的投影；求职信刻意不回显
type MyApplicationRow struct {
	JobTitle    string    `json:"jobTitle"`
	CompanyName string    `json:"companyName"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
}

// JobApplicationRow 公司视角的投影
type JobApplicationRow struct {
	ApplicantName string    `json:"applicantName"`
	ResumeLink    string    `json:"resumeLink"`
	CoverLetter   string    `json:"coverLetter"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}

func (s *ApplicationService) Submit(ctx context.Context, actor domain.Actor, jobID, coverLetter string, resume ResumeUpload) (*domain.Application, error) {
	if err := domain.RequireRole(actor, domain.RoleApplicant); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, domain.Internal("lookup job failed", err)
	}
	if job == nil {
		return nil, domain.NotFound("job not found")
	}

	// 先查一次给出友好报错；并发窗口由唯一索引兜底
	exists, err := s.apps.ExistsFor(ctx, actor.ID, jobID)
	if err != nil {
		return nil, domain.Internal("lookup application failed", err)
	}
	if exists {
		return nil, domain.Conflict("you have already applied to this job")
	}

	if utf8.RuneCountInString(coverLetter) > maxCoverLetterRunes {
		return nil, domain.Invalid("cover letter must be under 200 characters")
	}

	// 简历必须是 PDF，校验通过后才上传
	if !strings.Contains(strings.ToLower(resume.ContentType), "pdf") {
		return nil, domain.Invalid("file must be a PDF")
	}
	link, err := s.store.Upload(ctx, resume.Filename, resume.Reader)
	if err != nil {
		return nil, domain.Internal("resume upload failed", err)
	}

	a := &domain.Application{
		ID:          utils.NewID(),
		ApplicantID: actor.ID,
		JobID:       jobID,
		ResumeLink:  link,
		CoverLetter: coverLetter,
		Status:      domain.StatusApplied,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, err // repo 已映射 Conflict
	}
	return a, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor domain.Actor, page, pageSize int) ([]MyApplicationRow, int64, error) {
	if err := domain.RequireRole(actor, domain.RoleApplicant); err != nil {
		return nil, 0, err
	}
	_, ps, offset := normalizePage(page, pageSize)
	apps, total, err := s.apps.ListByApplicant(ctx, actor.ID, offset, ps)
	if err != nil {
		return nil, 0, domain.Internal("list applications failed", err)
	}

	out := make([]MyApplicationRow, 0, len(apps))
	for _, a := range apps {
		row := MyApplicationRow{Status: a.Status, AppliedAt: a.AppliedAt}
		if a.Job != nil {
			row.JobTitle = a.Job.Title
			if a.Job.CreatedBy != nil {
				row.CompanyName = a.Job.CreatedBy.Name
			}
		}
		out = append(out, row)
	}
	return out, total, nil
}

func (s *ApplicationService) ListForJob(ctx context.Context, actor domain.Actor, jobID string, page, pageSize int) ([]JobApplicationRow, int64, error) {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return nil, 0, err
	}
	// 归属校验沿用“不存在或无权限”合并口径
	job, err := s.jobs.FindOwned(ctx, jobID, actor.ID)
	if err != nil {
		return nil, 0, domain.Internal("lookup job failed", err)
	}
	if job == nil {
		return nil, 0, domain.NotFound(domain.MsgJobNotFoundOrForbidden)
	}

	_, ps, offset := normalizePage(page, pageSize)
	apps, total, err := s.apps.ListByJob(ctx, jobID, offset, ps)
	if err != nil {
		return nil, 0, domain.Internal("list applications failed", err)
	}

	out := make([]JobApplicationRow, 0, len(apps))
	for _, a := range apps {
		row := JobApplicationRow{
			ResumeLink:  a.ResumeLink,
			CoverLetter: a.CoverLetter,
			Status:      a.Status,
			AppliedAt:   a.AppliedAt,
		}
		if a.Applicant != nil {
			row.ApplicantName = a.Applicant.Name
		}
		out = append(out, row)
	}
	return out, total, nil
}

// UpdateStatus 状态图是全连接的：任意状态可以切到任意状态，含原地不动
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor domain.Actor, id, status string) (*domain.Application, error) {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return nil, err
	}
	if !domain.ValidStatus(status) {
		return nil, domain.Invalid("invalid status")
	}

	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("lookup application failed", err)
	}
	if a == nil || !domain.CanActOnJob(actor, a.Job) {
		return nil, domain.NotFound(domain.MsgApplicationNotFoundOrForbidden)
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		return nil, domain.Internal("update status failed", err)
	}
	refreshed, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("lookup application failed", err)
	}
	return refreshed, nil
}
