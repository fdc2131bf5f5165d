package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"jobboard-api/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	var j domain.Job
	err := r.db.WithContext(ctx).Preload("CreatedBy").First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}

func (r *JobRepo) FindOwned(ctx context.Context, id, ownerID string) (*domain.Job, error) {
	var j domain.Job
	err := r.db.WithContext(ctx).
		First(&j, "id = ? AND created_by_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}

func (r *JobRepo) Update(ctx context.Context, j *domain.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *JobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Job{}).Error
}

func (r *JobRepo) List(ctx context.Context, f domain.JobFilter, offset, limit int) ([]domain.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Job{})
	if s := strings.TrimSpace(f.Title); s != "" {
		q = q.Where("jobs.title LIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		q = q.Where("jobs.location LIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(f.CompanyName); s != "" {
		q = q.Joins("JOIN users ON users.id = jobs.created_by_id").
			Where("users.name LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []domain.Job
	if err := q.Preload("CreatedBy").
		Order("jobs.created_at ASC").Offset(offset).Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Job{}).Where("created_by_id = ?", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []domain.Job
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepo) CountApplications(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	type row struct {
		JobID string
		N     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Select("job_id, COUNT(*) AS n").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rr := range rows {
		out[rr.JobID] = rr.N
	}
	return out, nil
}
