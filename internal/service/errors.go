package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("参数错误")
	ErrAuthRequired    = errors.New("个性化信息流需要登录")
	ErrCursorInvalid   = errors.New("分页游标无效")
	ErrFeedTypeInvalid = errors.New("不支持的信息流类型")
	ErrReasonInvalid   = errors.New("无效的举报原因")
	ErrPostNotFound    = errors.New("帖子不存在")
	ErrUserNotFound    = errors.New("用户不存在")
	ErrBlockSelf       = errors.New("不能屏蔽自己")
	UnauthorizedError  = errors.New("权限不足")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrAuthRequired:    Unauthorized,
	ErrCursorInvalid:   BadRequest,
	ErrFeedTypeInvalid: BadRequest,
	ErrReasonInvalid:   BadRequest,
	ErrPostNotFound:    NotFound,
	ErrUserNotFound:    NotFound,
	ErrBlockSelf:       BadRequest,
	UnauthorizedError:  Unauthorized,
	UnExpectedError:    InternalServerError,
}
