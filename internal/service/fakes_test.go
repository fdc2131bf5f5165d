package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"jobboard-api/internal/domain"
)

// 内存版仓储，行为对齐 gorm 实现：唯一索引撞车返回 Conflict、
// 查不到返回 (nil, nil)、列表按创建顺序分页

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.Conflict("email already exists")
		}
	}
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeJobRepo struct {
	mu     sync.Mutex
	jobs   []*domain.Job
	owners map[string]*domain.User // CreatedBy 预加载数据
	counts map[string]int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{owners: map[string]*domain.User{}, counts: map[string]int64{}}
}

func (r *fakeJobRepo) withOwner(j domain.Job) *domain.Job {
	cp := j
	if o, ok := r.owners[j.CreatedByID]; ok {
		oc := *o
		cp.CreatedBy = &oc
	}
	return &cp
}

func (r *fakeJobRepo) Create(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs = append(r.jobs, &cp)
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			return r.withOwner(*j), nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) FindOwned(_ context.Context, id, ownerID string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id && j.CreatedByID == ownerID {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.jobs {
		if e.ID == j.ID {
			cp := *j
			r.jobs[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("job %s not stored", j.ID)
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.jobs {
		if e.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeJobRepo) List(_ context.Context, f domain.JobFilter, offset, limit int) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Job
	for _, j := range r.jobs {
		if f.Title != "" && !strings.Contains(j.Title, f.Title) {
			continue
		}
		if f.Location != "" && !strings.Contains(j.Location, f.Location) {
			continue
		}
		if f.CompanyName != "" {
			o, ok := r.owners[j.CreatedByID]
			if !ok || !strings.Contains(o.Name, f.CompanyName) {
				continue
			}
		}
		matched = append(matched, *r.withOwner(*j))
	}
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, ownerID string, offset, limit int) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Job
	for _, j := range r.jobs {
		if j.CreatedByID == ownerID {
			matched = append(matched, *j)
		}
	}
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeJobRepo) CountApplications(_ context.Context, jobIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, id := range jobIDs {
		if n, ok := r.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeAppRepo struct {
	mu    sync.Mutex
	apps  []*domain.Application
	jobs  *fakeJobRepo
	users *fakeUserRepo
	// raceMode 让 ExistsFor 假装没看见已有记录，模拟并发窗口，
	// 重复提交只能靠 Create 的唯一索引裁决
	raceMode bool
}

func (r *fakeAppRepo) preload(a domain.Application) *domain.Application {
	cp := a
	if r.jobs != nil {
		if j, _ := r.jobs.FindByID(context.Background(), a.JobID); j != nil {
			cp.Job = j
		}
	}
	if r.users != nil {
		if u, _ := r.users.FindByID(context.Background(), a.ApplicantID); u != nil {
			cp.Applicant = u
		}
	}
	return &cp
}

func (r *fakeAppRepo) Create(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.apps {
		if e.ApplicantID == a.ApplicantID && e.JobID == a.JobID {
			return domain.Conflict("you have already applied to this job")
		}
	}
	cp := *a
	r.apps = append(r.apps, &cp)
	return nil
}

func (r *fakeAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ID == id {
			return r.preload(*a), nil
		}
	}
	return nil, nil
}

func (r *fakeAppRepo) ExistsFor(_ context.Context, applicantID, jobID string) (bool, error) {
	if r.raceMode {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ApplicantID == applicantID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return fmt.Errorf("application %s not stored", id)
}

func (r *fakeAppRepo) ListByApplicant(_ context.Context, applicantID string, offset, limit int) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			matched = append(matched, *r.preload(*a))
		}
	}
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeAppRepo) ListByJob(_ context.Context, jobID string, offset, limit int) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			matched = append(matched, *r.preload(*a))
		}
	}
	return slicePage(matched, offset, limit), int64(len(matched)), nil
}

type fakeStore struct {
	mu      sync.Mutex
	uploads []string
	fail    bool
}

func (s *fakeStore) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	if s.fail {
		return "", fmt.Errorf("upload backend down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, filename)
	return "https://files.example/resumes/" + filename, nil
}

func slicePage[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]T{}, all[offset:end]...)
}
