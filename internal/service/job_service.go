package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"jobboard-api/internal/core/cache"
	"jobboard-api/internal/domain"
	"jobboard-api/pkg/utils"
)

const jobCacheTTL = 5 * time.Minute

type JobService struct {
	jobs  domain.JobRepository
	cache *cache.Cache // 可为 nil（测试 / 未配置 redis）
}

func NewJobService(jobs domain.JobRepository, c *cache.Cache) *JobService {
	return &JobService{jobs: jobs, cache: c}
}

type CreateJobInput struct {
	Title       string
	Description string
	Location    string
}

// JobWithCount 公司自己的职位列表行，带收到的申请数
type JobWithCount struct {
	domain.Job
	ApplicationCount int64 `json:"applicationCount"`
}

func validTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= 100
}

func validDescription(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 20 && n <= 2000
}

func (s *JobService) Create(ctx context.Context, actor domain.Actor, in CreateJobInput) (*domain.Job, error) {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if !validTitle(title) {
		return nil, domain.Invalid("title must be between 1 and 100 characters")
	}
	if !validDescription(in.Description) {
		return nil, domain.Invalid("description must be between 20 and 2000 characters")
	}

	j := &domain.Job{
		ID:          utils.NewID(),
		Title:       title,
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		CreatedByID: actor.ID,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, domain.Internal("create job failed", err)
	}
	return j, nil
}

func (s *JobService) Update(ctx context.Context, actor domain.Actor, id string, patch domain.JobPatch) (*domain.Job, error) {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return nil, err
	}
	// 不存在与不属于自己不区分
	j, err := s.jobs.FindOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, domain.Internal("lookup job failed", err)
	}
	if j == nil {
		return nil, domain.NotFound(domain.MsgJobNotFoundOrForbidden)
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if !validTitle(t) {
			return nil, domain.Invalid("title must be between 1 and 100 characters")
		}
		j.Title = t
	}
	if patch.Description != nil {
		if !validDescription(*patch.Description) {
			return nil, domain.Invalid("description must be between 20 and 2000 characters")
		}
		j.Description = *patch.Description
	}
	if patch.Location != nil {
		j.Location = strings.TrimSpace(*patch.Location)
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, domain.Internal("update job failed", err)
	}
	s.invalidate(ctx, id)
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return err
	}
	j, err := s.jobs.FindOwned(ctx, id, actor.ID)
	if err != nil {
		return domain.Internal("lookup job failed", err)
	}
	if j == nil {
		return domain.NotFound(domain.MsgJobNotFoundOrForbidden)
	}
	// 已有申请的职位照删不误；删除与投递并发竞争是接受的行为
	if err := s.jobs.Delete(ctx, id); err != nil {
		return domain.Internal("delete job failed", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// Get 公开查询，经 redis 读穿缓存
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	load := func(ctx context.Context) (*domain.Job, error) {
		j, err := s.jobs.FindByID(ctx, id)
		if err != nil {
			return nil, domain.Internal("lookup job failed", err)
		}
		if j == nil {
			return nil, domain.NotFound("job not found")
		}
		return j, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[domain.Job](s.cache, ctx, jobCacheKey(id), jobCacheTTL, load)
}

func (s *JobService) ListAll(ctx context.Context, actor domain.Actor, page, pageSize int, f domain.JobFilter) ([]domain.Job, int64, error) {
	if err := domain.RequireRole(actor, domain.RoleApplicant); err != nil {
		return nil, 0, err
	}
	_, ps, offset := normalizePage(page, pageSize)
	jobs, total, err := s.jobs.List(ctx, f, offset, ps)
	if err != nil {
		return nil, 0, domain.Internal("list jobs failed", err)
	}
	return jobs, total, nil
}

func (s *JobService) ListMine(ctx context.Context, actor domain.Actor, page, pageSize int) ([]JobWithCount, int64, error) {
	if err := domain.RequireRole(actor, domain.RoleCompany); err != nil {
		return nil, 0, err
	}
	_, ps, offset := normalizePage(page, pageSize)
	jobs, total, err := s.jobs.ListByOwner(ctx, actor.ID, offset, ps)
	if err != nil {
		return nil, 0, domain.Internal("list jobs failed", err)
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := s.jobs.CountApplications(ctx, ids)
	if err != nil {
		return nil, 0, domain.Internal("count applications failed", err)
	}

	out := make([]JobWithCount, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobWithCount{Job: j, ApplicationCount: counts[j.ID]})
	}
	return out, total, nil
}

func (s *JobService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, jobCacheKey(id))
	}
}

func jobCacheKey(id string) string { return "job:" + id }
