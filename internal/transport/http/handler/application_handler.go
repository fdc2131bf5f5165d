package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-api/internal/domain"
	"jobboard-api/internal/service"
	mdw "jobboard-api/internal/transport/http/middleware"
	resp "jobboard-api/internal/transport/http/response"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Mount(authed *gin.RouterGroup) {
	authed.POST("/applications", h.submit)
	authed.GET("/applications/my-applications", h.listMine)
	authed.GET("/applications/job/:jobId", h.listForJob)
	authed.PATCH("/applications/:id/status", h.updateStatus)
}

// submit multipart/form-data：jobId + coverLetter? + resume 文件
func (h *ApplicationHandler) submit(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)

	jobID := c.PostForm("jobId")
	if jobID == "" {
		resp.WriteError(c, domain.Invalid("jobId is required"))
		return
	}
	coverLetter := c.PostForm("coverLetter")

	fh, err := c.FormFile("resume")
	if err != nil {
		resp.WriteError(c, domain.Invalid("resume file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp.WriteError(c, domain.Internal("open resume failed", err))
		return
	}
	defer f.Close()

	app, err := h.svc.Submit(c.Request.Context(), actor, jobID, coverLetter, service.ResumeUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	})
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusCreated, "application submitted successfully", app)
}

func (h *ApplicationHandler) listMine(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var q pageQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	rows, total, err := h.svc.ListMine(c.Request.Context(), actor, q.Page, q.PageSize)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WritePaged(c, "applications retrieved successfully", rows, q.Page, q.PageSize, total)
}

func (h *ApplicationHandler) listForJob(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var q pageQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	rows, total, err := h.svc.ListForJob(c.Request.Context(), actor, c.Param("jobId"), q.Page, q.PageSize)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WritePaged(c, "applications retrieved successfully", rows, q.Page, q.PageSize, total)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) updateStatus(c *gin.Context) {
	actor, _ := mdw.ActorFrom(c)
	var in updateStatusReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	app, err := h.svc.UpdateStatus(c.Request.Context(), actor, c.Param("id"), in.Status)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusOK, "application status updated successfully", app)
}
