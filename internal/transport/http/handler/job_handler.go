package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-api/internal/domain"
	"jobboard-api/internal/service"
	mdw "jobboard-api/internal/transport/http/middleware"
	resp "jobboard-api/internal/transport/http/response"
)

type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler { return &JobHandler{svc: svc} }

// Mount 单个职位查询是公开接口，其余都要登录
func (h *JobHandler) Mount(public, authed *gin.RouterGroup) {
	public.GET("/jobs/:id", h.get)

	authed.POST("/jobs", h.create)
	authed.PATCH("/jobs/:id", h.update)
	authed.DELETE("/jobs/:id", h.delete)
	authed.GET("/jobs", h.list)
	authed.GET("/jobs/my-jobs", h.listMine)
}

type pageQ struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=10"`
}

type createJobReq struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
}

func (h *JobHandler) create(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var in createJobReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	job, err := h.svc.Create(c.Request.Context(), actor, service.CreateJobInput{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
	})
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusCreated, "job created successfully", job)
}

type updateJobReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

func (h *JobHandler) update(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var in updateJobReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	job, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), domain.JobPatch{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
	})
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusOK, "job updated successfully", job)
}

func (h *JobHandler) delete(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusOK, "job deleted successfully", nil)
}

func (h *JobHandler) get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusOK, "job retrieved successfully", job)
}

type listJobsQ struct {
	pageQ
	Title       string `form:"title"`
	Location    string `form:"location"`
	CompanyName string `form:"companyName"`
}

func (h *JobHandler) list(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var q listJobsQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	jobs, total, err := h.svc.ListAll(c.Request.Context(), actor, q.Page, q.PageSize, domain.JobFilter{
		Title:       q.Title,
		Location:    q.Location,
		CompanyName: q.CompanyName,
	})
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WritePaged(c, "jobs retrieved successfully", jobs, q.Page, q.PageSize, total)
}

func (h *JobHandler) listMine(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var q pageQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	jobs, total, err := h.svc.ListMine(c.Request.Context(), actor, q.Page, q.PageSize)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WritePaged(c, "jobs retrieved successfully", jobs, q.Page, q.PageSize, total)
}
