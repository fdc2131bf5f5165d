package domain

import (
	"context"
	"time"
)

// 申请状态集合固定；任意状态之间都允许切换，不做有向图校验
const (
	StatusApplied     = "APPLIED"
	StatusUnderReview = "UNDER_REVIEW"
	StatusAccepted    = "ACCEPTED"
	StatusRejected    = "REJECTED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application (applicant_id, job_id) 全局唯一，由数据库复合唯一索引保证
type Application struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ApplicantID string    `gorm:"size:36;not null;uniqueIndex:idx_applicant_job" json:"-"`
	Applicant   *User     `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	JobID       string    `gorm:"size:36;not null;uniqueIndex:idx_applicant_job" json:"jobId"`
	Job         *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ResumeLink  string    `gorm:"size:512;not null" json:"resumeLink"`
	CoverLetter string    `gorm:"size:200" json:"coverLetter,omitempty"`
	Status      string    `gorm:"size:16;not null;default:APPLIED" json:"status"`
	AppliedAt   time.Time `gorm:"autoCreateTime" json:"appliedAt"`
}

func (Application) TableName() string { return "applications" }

type ApplicationRepository interface {
	// Create 撞上唯一索引时返回 Conflict 类型错误
	Create(ctx context.Context, a *Application) error
	// FindByID 预加载 Job 及 Job.CreatedBy（状态变更要校验归属）
	FindByID(ctx context.Context, id string) (*Application, error)
	ExistsFor(ctx context.Context, applicantID, jobID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListByApplicant 预加载 Job、Job.CreatedBy
	ListByApplicant(ctx context.Context, applicantID string, offset, limit int) ([]Application, int64, error)
	// ListByJob 预加载 Applicant
	ListByJob(ctx context.Context, jobID string, offset, limit int) ([]Application, int64, error)
}
