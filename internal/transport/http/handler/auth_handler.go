package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-api/internal/domain"
	"jobboard-api/internal/service"
	resp "jobboard-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	a := g.Group("/auth")
	a.POST("/signup", h.signup)
	a.POST("/login", h.login)
}

type signupReq struct {
	Name     string `json:"name"     binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"required"`
}

func (h *AuthHandler) signup(c *gin.Context) {
	var in signupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	out, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusCreated, "user created successfully", out)
}

type loginReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.Invalid(err.Error()))
		return
	}
	tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	resp.WriteOK(c, http.StatusOK, "login successful", gin.H{"access_token": tok})
}
