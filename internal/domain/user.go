package domain

import (
	"context"
	"time"
)

// 角色固定两种，注册后不可变更
const (
	RoleApplicant = "applicant"
	RoleCompany   = "company"
)

func ValidRole(r string) bool {
	return r == RoleApplicant || r == RoleCompany
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null" json:"role"` // "applicant"/"company"
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "users" }

// Actor 鉴权后的请求主体（来自 JWT claims）
type Actor struct {
	ID   string
	Role string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
