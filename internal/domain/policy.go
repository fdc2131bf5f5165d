package domain

import "fmt"

// 授权策略集中在这里；service 方法入口先调这里，不在方法体里散落角色比较

// RequireRole 角色不符返回 Forbidden
func RequireRole(actor Actor, role string) error {
	if actor.Role != role {
		return Forbidden(fmt.Sprintf("only %s accounts can perform this action", role))
	}
	return nil
}

// CanActOnJob 属主判定：发布该职位的公司账号
func CanActOnJob(actor Actor, job *Job) bool {
	return job != nil && actor.ID == job.CreatedByID
}
