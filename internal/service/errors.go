package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserUsernameExist = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrMessageNotFound   = errors.New("消息不存在")
	ErrNotChattedYet     = errors.New("两人还没有聊过天，无法加入收藏")
	ErrFavouriteExist    = errors.New("已在收藏列表中")
	ErrFavouriteNotFound = errors.New("收藏关系不存在")
	ErrMailNotFound      = errors.New("邮件不存在")
	ErrMailUserNotFound  = errors.New("邮箱联系人不存在")
	ErrMailUserExist     = errors.New("邮箱地址已登记")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserUsernameExist: BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrMessageNotFound:   NotFound,
	ErrNotChattedYet:     NotFound,
	ErrFavouriteExist:    BadRequest,
	ErrFavouriteNotFound: NotFound,
	ErrMailNotFound:      NotFound,
	ErrMailUserNotFound:  NotFound,
	ErrMailUserExist:     BadRequest,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
