package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobboard-api/internal/core/auth"
	"jobboard-api/internal/domain"
	"jobboard-api/internal/service"
	"jobboard-api/internal/transport/http/handler"
	"jobboard-api/internal/transport/http/router"
)

func init() { gin.SetMode(gin.TestMode) }

// memDB 三个仓储共用的一份内存状态，省去真数据库
type memDB struct {
	mu    sync.Mutex
	users []*domain.User
	jobs  []*domain.Job
	apps  []*domain.Application
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.users {
		if e.Email == u.Email {
			return domain.Conflict("email already exists")
		}
	}
	cp := *u
	r.db.users = append(r.db.users, &cp)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.userByID(id), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *memDB) userByID(id string) *domain.User {
	for _, e := range db.users {
		if e.ID == id {
			cp := *e
			return &cp
		}
	}
	return nil
}

type memJobRepo struct{ db *memDB }

func (r *memJobRepo) Create(_ context.Context, j *domain.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *j
	r.db.jobs = append(r.db.jobs, &cp)
	return nil
}

func (r *memJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, j := range r.db.jobs {
		if j.ID == id {
			cp := *j
			cp.CreatedBy = r.db.userByID(j.CreatedByID)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memJobRepo) FindOwned(_ context.Context, id, ownerID string) (*domain.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, j := range r.db.jobs {
		if j.ID == id && j.CreatedByID == ownerID {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memJobRepo) Update(_ context.Context, j *domain.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, e := range r.db.jobs {
		if e.ID == j.ID {
			cp := *j
			r.db.jobs[i] = &cp
		}
	}
	return nil
}

func (r *memJobRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, e := range r.db.jobs {
		if e.ID == id {
			r.db.jobs = append(r.db.jobs[:i], r.db.jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memJobRepo) List(_ context.Context, f domain.JobFilter, offset, limit int) ([]domain.Job, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []domain.Job
	for _, j := range r.db.jobs {
		if f.Title != "" && !strings.Contains(j.Title, f.Title) {
			continue
		}
		if f.Location != "" && !strings.Contains(j.Location, f.Location) {
			continue
		}
		if f.CompanyName != "" {
			o := r.db.userByID(j.CreatedByID)
			if o == nil || !strings.Contains(o.Name, f.CompanyName) {
				continue
			}
		}
		cp := *j
		cp.CreatedBy = r.db.userByID(j.CreatedByID)
		matched = append(matched, cp)
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memJobRepo) ListByOwner(_ context.Context, ownerID string, offset, limit int) ([]domain.Job, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []domain.Job
	for _, j := range r.db.jobs {
		if j.CreatedByID == ownerID {
			matched = append(matched, *j)
		}
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memJobRepo) CountApplications(_ context.Context, jobIDs []string) (map[string]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[string]int64{}
	for _, id := range jobIDs {
		for _, a := range r.db.apps {
			if a.JobID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type memAppRepo struct{ db *memDB }

func (r *memAppRepo) Create(_ context.Context, a *domain.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.apps {
		if e.ApplicantID == a.ApplicantID && e.JobID == a.JobID {
			return domain.Conflict("you have already applied to this job")
		}
	}
	cp := *a
	r.db.apps = append(r.db.apps, &cp)
	return nil
}

func (r *memAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.ID == id {
			return r.preload(a), nil
		}
	}
	return nil, nil
}

func (r *memAppRepo) preload(a *domain.Application) *domain.Application {
	cp := *a
	for _, j := range r.db.jobs {
		if j.ID == a.JobID {
			jc := *j
			jc.CreatedBy = r.db.userByID(j.CreatedByID)
			cp.Job = &jc
		}
	}
	cp.Applicant = r.db.userByID(a.ApplicantID)
	return &cp
}

func (r *memAppRepo) ExistsFor(_ context.Context, applicantID, jobID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.ApplicantID == applicantID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.ID == id {
			a.Status = status
		}
	}
	return nil
}

func (r *memAppRepo) ListByApplicant(_ context.Context, applicantID string, offset, limit int) ([]domain.Application, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []domain.Application
	for _, a := range r.db.apps {
		if a.ApplicantID == applicantID {
			matched = append(matched, *r.preload(a))
		}
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memAppRepo) ListByJob(_ context.Context, jobID string, offset, limit int) ([]domain.Application, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []domain.Application
	for _, a := range r.db.apps {
		if a.JobID == jobID {
			matched = append(matched, *r.preload(a))
		}
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]T{}, all[offset:end]...)
}

type memStore struct{}

func (memStore) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return "https://files.example/resumes/" + filename, nil
}

// newTestEngine 真路由 + 真 service + 内存仓储
func newTestEngine() *gin.Engine {
	db := &memDB{}
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(service.NewAuthService(&memUserRepo{db: db}, jwter)),
		Job:         handler.NewJobHandler(service.NewJobService(&memJobRepo{db: db}, nil)),
		Application: handler.NewApplicationHandler(service.NewApplicationService(&memAppRepo{db: db}, &memJobRepo{db: db}, memStore{})),
	}
	return router.NewAPIEngine(zap.NewNop(), jwter, h)
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Object     json.RawMessage `json:"object"`
	PageNumber *int            `json:"pageNumber"`
	PageSize   *int            `json:"pageSize"`
	TotalSize  *int64          `json:"totalSize"`
	Errors     []string        `json:"errors"`
}

func doJSON(t *testing.T, e *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func resumeForm(t *testing.T, jobID, coverLetter, filename, contentType string) (io.Reader, string) {
	t.Helper()
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	require.NoError(t, w.WriteField("jobId", jobID))
	if coverLetter != "" {
		require.NoError(t, w.WriteField("coverLetter", coverLetter))
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 test payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &b, w.FormDataContentType()
}

func doMultipart(t *testing.T, e *gin.Engine, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func signupAndLogin(t *testing.T, e *gin.Engine, name, email, role string) string {
	t.Helper()
	w, env := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "Sup3r$ecret", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	w, env = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "Sup3r$ecret",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var obj map[string]string
	require.NoError(t, json.Unmarshal(env.Object, &obj))
	require.NotEmpty(t, obj["access_token"])
	return obj["access_token"]
}
