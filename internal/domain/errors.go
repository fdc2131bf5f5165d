package domain

import "errors"

// Kind 业务错误分类，transport 层统一映射到 HTTP 状态码
type Kind int

const (
	KindInvalid      Kind = iota // 400 入参非法
	KindUnauthorized             // 401 未登录 / 凭证错误
	KindForbidden                // 403 角色不符
	KindNotFound                 // 404 不存在（含“不存在或无权限”合并口径）
	KindConflict                 // 409 唯一性冲突
	KindInternal                 // 500
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // 可选的底层原因，不对外暴露
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "domain error"
}

func (e *Error) Unwrap() error { return e.Err }

func Invalid(msg string) error      { return &Error{Kind: KindInvalid, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 未分类错误一律按 Internal 处理
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// 职位的“不存在”与“不是你的”合并为同一结果，避免向非属主泄露存在性
const MsgJobNotFoundOrForbidden = "job not found or you do not have permission"

const MsgApplicationNotFoundOrForbidden = "application not found or you do not have permission"
