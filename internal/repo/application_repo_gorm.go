package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard-api/internal/domain"
)

type ApplicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// Create 依赖 (applicant_id, job_id) 的复合唯一索引；
// 并发重复提交由数据库裁决，撞索引的一方拿到 Conflict
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isDupKey(err) {
			return domain.Conflict("you have already applied to this job")
		}
		return err
	}
	return nil
}

func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").Preload("Job.CreatedBy").
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *ApplicationRepo) ExistsFor(ctx context.Context, applicantID, jobID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&n).Error
	return n > 0, err
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string, offset, limit int) ([]domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("applicant_id = ?", applicantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []domain.Application
	if err := q.Preload("Job").Preload("Job.CreatedBy").
		Order("applied_at ASC").Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string, offset, limit int) ([]domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ?", jobID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []domain.Application
	if err := q.Preload("Applicant").
		Order("applied_at ASC").Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
