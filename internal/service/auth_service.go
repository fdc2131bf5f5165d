package service

import (
	"context"
	"regexp"
	"strings"

	"jobboard-api/internal/core/auth"
	"jobboard-api/internal/domain"
	"jobboard-api/pkg/utils"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserSummary 注册返回体，绝不带密码散列
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*UserSummary, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if !nameRe.MatchString(name) {
		return nil, domain.Invalid("name must contain only alphabets")
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.Invalid("role must be either applicant or company")
	}
	if !utils.StrongPassword(in.Password) {
		return nil, domain.Invalid("password must be at least 8 characters long and include uppercase, lowercase, number, and special character")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal("lookup user failed", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email already exists")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         in.Role,
	}
	// 并发注册同邮箱由唯一索引兜底，repo 把撞索引映射成 Conflict
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", domain.Internal("lookup user failed", err)
	}
	if u == nil {
		return "", domain.Unauthorized("user not found")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.Unauthorized("incorrect password")
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", domain.Internal("issue token failed", err)
	}
	return tok, nil
}
