package domain

import (
	"context"
	"time"
)

type Job struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Location    string    `gorm:"size:128" json:"location,omitempty"`
	CreatedByID string    `gorm:"size:36;not null;index" json:"-"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Job) TableName() string { return "jobs" }

// JobPatch 局部更新：nil 字段保持不变
type JobPatch struct {
	Title       *string
	Description *string
	Location    *string
}

// JobFilter 浏览职位的筛选条件，全部子串匹配
type JobFilter struct {
	Title       string
	Location    string
	CompanyName string
}

type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	// FindByID 预加载 CreatedBy
	FindByID(ctx context.Context, id string) (*Job, error)
	// FindOwned 只在 job 存在且属于 ownerID 时返回，存在与归属不区分
	FindOwned(ctx context.Context, id, ownerID string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f JobFilter, offset, limit int) ([]Job, int64, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]Job, int64, error)
	// CountApplications 返回 jobID -> 收到的申请数
	CountApplications(ctx context.Context, jobIDs []string) (map[string]int64, error)
}
